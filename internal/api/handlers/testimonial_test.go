package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"testimonial-portal-backend/internal/api/handlers"
	"testimonial-portal-backend/internal/auth"
	"testimonial-portal-backend/internal/service"
	"testimonial-portal-backend/internal/store"
	"testimonial-portal-backend/internal/testutils"
)

const (
	testBaseURL = "http://testimonials.example.com"
	testMarker  = "letmein"
)

type discardMailer struct{}

func (discardMailer) Send(to, subject, body string) error { return nil }

type TestimonialHandlerTestSuite struct {
	suite.Suite
	*testutils.HTTPTestSuite
	store   *store.FileStore
	factory *testutils.TestimonialFactory
}

func (suite *TestimonialHandlerTestSuite) SetupTest() {
	suite.HTTPTestSuite = testutils.SetupHTTPTest()
	suite.factory = testutils.NewTestimonialFactory()

	dataDir := suite.T().TempDir()
	st, err := store.NewFileStore(dataDir)
	require.NoError(suite.T(), err)
	suite.store = st

	logos, err := service.NewLogoStore(suite.T().TempDir())
	require.NoError(suite.T(), err)

	// The admin marker file sits next to the records, as in production.
	require.NoError(suite.T(),
		os.WriteFile(filepath.Join(dataDir, testMarker), []byte{}, 0o644))

	notifier := service.NewNotifier(discardMailer{}, "moderation@example.com", testBaseURL)
	exporter := service.NewExporter(st)
	svc := service.NewTestimonialService(st, logos, notifier, exporter, validator.New(), testBaseURL)
	handler := handlers.NewTestimonialHandler(svc, auth.NewGate(dataDir, ""))

	suite.Router.GET("/testimonials", handler.Dispatch)
	suite.Router.POST("/testimonials", handler.Dispatch)
}

// submit pushes a valid submission through the endpoint and returns its id.
func (suite *TestimonialHandlerTestSuite) submit() string {
	form := suite.factory.Form()
	form.Set("action", "Review Profile Submission")

	w := suite.MakeFormRequest("/testimonials", form)
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	id, _ := resp["id"].(string)
	require.NotEmpty(suite.T(), id)
	return id
}

// accept publishes a record through the admin gate.
func (suite *TestimonialHandlerTestSuite) accept(id string) {
	w := suite.MakeGetRequest("/testimonials?" + url.Values{
		"action": {"Accept"}, "id": {id}, "p": {testMarker},
	}.Encode())
	require.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *TestimonialHandlerTestSuite) TestAdd_ReturnsBlankForm() {
	w := suite.MakeGetRequest("/testimonials?action=Add")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(suite.T(), resp, "lookups")
	assert.NotContains(suite.T(), resp, "record")
}

func (suite *TestimonialHandlerTestSuite) TestReview_CreatesPendingRecord() {
	id := suite.submit()

	rec, err := suite.store.Get(id)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), rec.Visible)
}

func (suite *TestimonialHandlerTestSuite) TestReview_EditLinkPointsBack() {
	form := suite.factory.Form()
	form.Set("action", "Review Profile Submission")

	w := suite.MakeFormRequest("/testimonials", form)
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	link, _ := resp["edit_link"].(string)
	assert.Contains(suite.T(), link, testBaseURL+"/testimonials?action=Modify&id=")
}

func (suite *TestimonialHandlerTestSuite) TestReview_ValidationFailure() {
	form := suite.factory.Form()
	form.Set("action", "Review Profile Submission")
	form.Set("number_dir", "200")

	w := suite.MakeFormRequest("/testimonials", form)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "validation failed", resp.Error)
	assert.Contains(suite.T(), resp.Fields, "number_dir")

	recs, _, err := suite.store.List(store.FilterAll, 0, 10)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), recs)
}

func (suite *TestimonialHandlerTestSuite) TestReview_MultipartLogoUpload() {
	form := suite.factory.Form()
	form.Set("action", "Review Profile Submission")

	w := suite.MakeMultipartRequest("/testimonials", form, "org_logo", "logo.png", []byte("img"))
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	rec, err := suite.store.Get(resp["id"].(string))
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), rec.OrgLogo)
}

func (suite *TestimonialHandlerTestSuite) TestModify_ReturnsRecordWithLookups() {
	id := suite.submit()

	w := suite.MakeGetRequest("/testimonials?action=Modify&id=" + id)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp struct {
		Lookups map[string]map[string]string `json:"lookups"`
		Record  map[string]interface{}       `json:"record"`
	}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(suite.T(), resp.Lookups)
	assert.Equal(suite.T(), id, resp.Record["id"])
}

func (suite *TestimonialHandlerTestSuite) TestModify_TraversalID() {
	w := suite.MakeGetRequest("/testimonials?" + url.Values{
		"action": {"Modify"}, "id": {"../../etc/passwd"},
	}.Encode())

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.JSONEq(suite.T(), `{"error":"we cannot verify your id"}`, w.Body.String())
}

func (suite *TestimonialHandlerTestSuite) TestSave_UpdatesRecord() {
	id := suite.submit()

	form := suite.factory.Form()
	form.Set("action", "Save")
	form.Set("id", id)
	form.Set("org_name", "Renamed Corp")

	w := suite.MakeFormRequest("/testimonials", form)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	rec, err := suite.store.Get(id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Renamed Corp", rec.OrgName)
}

func (suite *TestimonialHandlerTestSuite) TestSave_SpamRejected() {
	id := suite.submit()

	form := suite.factory.Form()
	form.Set("action", "Save")
	form.Set("id", id)
	form.Set("comments", "visit http://spam.example now")

	w := suite.MakeFormRequest("/testimonials", form)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	rec, err := suite.store.Get(id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Reliable backups for years.", rec.Comments)
}

func (suite *TestimonialHandlerTestSuite) TestView_HiddenRecordLooksAbsentToPublic() {
	id := suite.submit()

	w := suite.MakeGetRequest("/testimonials?action=View&id=" + id)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.JSONEq(suite.T(), `{"error":"we cannot verify your id"}`, w.Body.String())
}

func (suite *TestimonialHandlerTestSuite) TestView_AdminSeesHiddenRecord() {
	id := suite.submit()

	w := suite.MakeGetRequest("/testimonials?" + url.Values{
		"action": {"View"}, "id": {id}, "p": {testMarker},
	}.Encode())

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *TestimonialHandlerTestSuite) TestAcceptThenPublicView() {
	id := suite.submit()
	suite.accept(id)

	w := suite.MakeGetRequest("/testimonials?action=View&id=" + id)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *TestimonialHandlerTestSuite) TestAccept_HideFlag() {
	id := suite.submit()
	suite.accept(id)

	w := suite.MakeGetRequest("/testimonials?" + url.Values{
		"action": {"Accept"}, "id": {id}, "hide": {"1"}, "p": {testMarker},
	}.Encode())
	require.Equal(suite.T(), http.StatusOK, w.Code)

	rec, err := suite.store.Get(id)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), rec.Visible)
}

func (suite *TestimonialHandlerTestSuite) TestAccept_DeniedReadsLikeUnknownAction() {
	id := suite.submit()

	denied := suite.MakeGetRequest("/testimonials?" + url.Values{
		"action": {"Accept"}, "id": {id},
	}.Encode())
	unknown := suite.MakeGetRequest("/testimonials?action=Bogus")

	assert.Equal(suite.T(), http.StatusNotFound, denied.Code)
	assert.Equal(suite.T(), unknown.Code, denied.Code)
	assert.Equal(suite.T(), unknown.Body.String(), denied.Body.String())

	// The denied request had no effect.
	rec, err := suite.store.Get(id)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), rec.Visible)
}

func (suite *TestimonialHandlerTestSuite) TestDelete_ThenViewNotFound() {
	id := suite.submit()
	suite.accept(id)

	w := suite.MakeGetRequest("/testimonials?action=Delete&id=" + id)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.MakeGetRequest("/testimonials?action=View&id=" + id)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TestimonialHandlerTestSuite) TestViewAll_OnlyPublishedRecords() {
	hidden := suite.submit()
	published := suite.submit()
	suite.accept(published)

	w := suite.MakeGetRequest("/testimonials?action=ViewAll")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp struct {
		Testimonials []map[string]interface{} `json:"testimonials"`
	}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(suite.T(), resp.Testimonials, 1)
	assert.Equal(suite.T(), published, resp.Testimonials[0]["id"])
	assert.NotEqual(suite.T(), hidden, resp.Testimonials[0]["id"])
}

func (suite *TestimonialHandlerTestSuite) TestViewAll_LimitClamped() {
	w := suite.MakeGetRequest("/testimonials?action=ViewAll&limit=500")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp struct {
		Limit int `json:"limit"`
	}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), store.MaxPageSize, resp.Limit)
}

func (suite *TestimonialHandlerTestSuite) TestAdmin_WaitingQueue() {
	waiting := suite.submit()
	published := suite.submit()
	suite.accept(published)

	w := suite.MakeGetRequest("/testimonials?" + url.Values{
		"action": {"Admin"}, "waiting": {"1"}, "p": {testMarker},
	}.Encode())

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp struct {
		Testimonials []map[string]interface{} `json:"testimonials"`
	}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(suite.T(), resp.Testimonials, 1)
	assert.Equal(suite.T(), waiting, resp.Testimonials[0]["id"])
}

func (suite *TestimonialHandlerTestSuite) TestAdminExport_DumpsOneRecord() {
	id := suite.submit()

	w := suite.MakeGetRequest("/testimonials?" + url.Values{
		"action": {"AdminExport"}, "id": {id}, "p": {testMarker},
	}.Encode())

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "id = "+id)
	assert.Contains(suite.T(), w.Body.String(), "catalog = 300 (PostgreSQL)")
}

func (suite *TestimonialHandlerTestSuite) TestSQL_DumpsSchemaAndRecords() {
	id := suite.submit()

	w := suite.MakeGetRequest("/testimonials?" + url.Values{
		"action": {"sql"}, "p": {testMarker},
	}.Encode())

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "CREATE TABLE testimonials")
	assert.Contains(suite.T(), w.Body.String(), "'"+id+"'")
}

func (suite *TestimonialHandlerTestSuite) TestSQL_DeniedWithoutGate() {
	w := suite.MakeGetRequest("/testimonials?action=sql")

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.JSONEq(suite.T(), `{"error":"unknown action"}`, w.Body.String())
}

func (suite *TestimonialHandlerTestSuite) TestUnknownAction() {
	w := suite.MakeGetRequest("/testimonials?action=Destroy")

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.JSONEq(suite.T(), `{"error":"unknown action"}`, w.Body.String())
}

func (suite *TestimonialHandlerTestSuite) TestMissingAction() {
	w := suite.MakeGetRequest("/testimonials")

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestTestimonialHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TestimonialHandlerTestSuite))
}
