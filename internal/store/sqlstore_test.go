package store_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	apperrors "testimonial-portal-backend/internal/errors"
	"testimonial-portal-backend/internal/store"
	"testimonial-portal-backend/internal/testutils"
)

type SQLStoreTestSuite struct {
	suite.Suite
	store   *store.SQLStore
	factory *testutils.TestimonialFactory
}

func (suite *SQLStoreTestSuite) SetupTest() {
	st, err := store.NewSQLStore(filepath.Join(suite.T().TempDir(), "testimonials.db"))
	require.NoError(suite.T(), err)
	suite.store = st
	suite.factory = testutils.NewTestimonialFactory()
}

func (suite *SQLStoreTestSuite) TestCreateThenGet_RoundTrip() {
	rec := suite.factory.Create()

	id, err := suite.store.Create(rec)

	require.NoError(suite.T(), err)
	got, err := suite.store.Get(id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), rec.ContactName, got.ContactName)
	assert.Equal(suite.T(), rec.CatalogID, got.CatalogID)
	assert.False(suite.T(), got.Visible)
}

func (suite *SQLStoreTestSuite) TestGet_InvalidIDShortCircuits() {
	_, err := suite.store.Get("../../etc/passwd")
	assert.True(suite.T(), errors.Is(err, apperrors.ErrTestimonialNotFound))
}

func (suite *SQLStoreTestSuite) TestSoftDelete_IdempotentAndExcluded() {
	id, err := suite.store.Create(suite.factory.WithVisible(true))
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.store.SoftDelete(id))
	assert.NoError(suite.T(), suite.store.SoftDelete(id))

	_, err = suite.store.Get(id)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrTestimonialNotFound))

	recs, _, err := suite.store.List(store.FilterAll, 0, 10)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), recs)
}

func (suite *SQLStoreTestSuite) TestList_FilterAndHasMore() {
	for i := 0; i < 3; i++ {
		_, err := suite.store.Create(suite.factory.WithVisible(true))
		require.NoError(suite.T(), err)
	}
	_, err := suite.store.Create(suite.factory.WithVisible(false))
	require.NoError(suite.T(), err)

	public, hasMore, err := suite.store.List(store.FilterPublic, 0, 2)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), public, 2)
	assert.True(suite.T(), hasMore)

	waiting, hasMore, err := suite.store.List(store.FilterWaiting, 0, 10)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), waiting, 1)
	assert.False(suite.T(), hasMore)
}

func TestSQLStoreTestSuite(t *testing.T) {
	suite.Run(t, new(SQLStoreTestSuite))
}
