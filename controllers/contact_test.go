package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestGetContactMessageStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	count := func(n int) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"count(*)"}).AddRow(n)
	}
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `contact_messages`").
		WillReturnRows(count(10))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `contact_messages` WHERE is_read = \\? AND is_archived = \\?").
		WillReturnRows(count(4))
	// Starred excludes archived, same as the starred list filter.
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `contact_messages` WHERE is_starred = \\? AND is_archived = \\?").
		WillReturnRows(count(2))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `contact_messages` WHERE is_archived = \\?").
		WillReturnRows(count(3))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/messages/stats", nil)

	GetContactMessageStats(db)(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":10,"unread":4,"starred":2,"archived":3}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetContactMessageStatsCountFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `contact_messages`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(10))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `contact_messages` WHERE is_read = \\?").
		WillReturnError(errors.New("driver: bad connection"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/messages/stats", nil)

	GetContactMessageStats(db)(c)

	// A failed counter is an error, never a zero passed off as real.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
