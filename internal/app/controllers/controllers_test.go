package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/services"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/middleware"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterWithGin(); err != nil {
		panic(err)
	}
}

// asUser stands in for JWTAuth
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserID, userID)
		}
		c.Next()
	}
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

type connectionStub struct {
	services.ConnectionService
	createErr     error
	respondStatus domain.RelationshipStatus
}

func (s *connectionStub) Create(_ context.Context, requesterID, targetID string) (*models.Connection, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Connection{ID: "c1", UserID1: requesterID, UserID2: targetID, Status: domain.StatusPending}, nil
}

func (s *connectionStub) Respond(_ context.Context, callerID, id string, status domain.RelationshipStatus) (*models.Connection, error) {
	s.respondStatus = status
	return &models.Connection{ID: id, UserID1: "other", UserID2: callerID, Status: status}, nil
}

func connectionRouter(stub *connectionStub, userID string) *gin.Engine {
	c := NewConnectionController(stub, zerolog.Nop())
	r := gin.New()
	r.Use(asUser(userID))
	r.POST("/connections", c.Create)
	r.PATCH("/connections/:id", c.Respond)
	return r
}

func TestConnectionCreate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		w := serve(connectionRouter(&connectionStub{}, "u1"), http.MethodPost, "/connections", `{"userId":"u2"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Data dto.ConnectionResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "u1", resp.Data.RequesterID)
		assert.Equal(t, "pending", resp.Data.Status)
	})

	t.Run("duplicate", func(t *testing.T) {
		stub := &connectionStub{createErr: apperrors.ErrConnectionAlreadyExists}
		w := serve(connectionRouter(stub, "u1"), http.MethodPost, "/connections", `{"userId":"u2"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing body field", func(t *testing.T) {
		w := serve(connectionRouter(&connectionStub{}, "u1"), http.MethodPost, "/connections", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := serve(connectionRouter(&connectionStub{}, ""), http.MethodPost, "/connections", `{"userId":"u2"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, errorCode(t, w))
	})
}

func TestConnectionRespondParsesAnswer(t *testing.T) {
	stub := &connectionStub{}
	r := connectionRouter(stub, "u2")

	w := serve(r, http.MethodPatch, "/connections/c1", `{"status":"Accepted"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StatusAccepted, stub.respondStatus)

	w = serve(r, http.MethodPatch, "/connections/c1", `{"status":"pending"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type mentorshipStub struct {
	services.MentorshipService
	respondErr error
}

func (s *mentorshipStub) Respond(_ context.Context, mentorID, id string, status domain.RelationshipStatus) (*models.MentorshipRequest, error) {
	if s.respondErr != nil {
		return nil, s.respondErr
	}
	return &models.MentorshipRequest{ID: id, MentorID: mentorID, MenteeID: "t1", Status: status}, nil
}

func TestMentorshipRespondErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"stale", apperrors.ErrStaleStatus, http.StatusConflict, dto.ErrorCodeConflict},
		{"forbidden", apperrors.NewForbiddenError("Only the requested mentor can respond"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"not found", apperrors.ErrRequestNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"storage", errors.New("welcome message insert failed"), http.StatusInternalServerError, dto.ErrorCodeDatabaseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewMentorshipController(&mentorshipStub{respondErr: tt.err}, zerolog.Nop())
			r := gin.New()
			r.Use(asUser("m1"))
			r.PATCH("/mentorship-requests/:id", c.Respond)

			w := serve(r, http.MethodPatch, "/mentorship-requests/r1", `{"status":"accepted"}`)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

type blogStub struct {
	services.BlogService
	filter models.PostListFilter
	viewer string
}

func (s *blogStub) ListPosts(_ context.Context, filter models.PostListFilter) ([]*models.BlogPost, int64, error) {
	s.filter = filter
	return []*models.BlogPost{{ID: "p1", Title: "Hello", Categories: "go,career", Status: domain.PostPublished}}, 21, nil
}

func (s *blogStub) RecordView(_ context.Context, viewerID, _ string) error {
	s.viewer = viewerID
	return nil
}

func TestBlogListPaginatesForAnonymousViewer(t *testing.T) {
	stub := &blogStub{}
	c := NewBlogController(stub, zerolog.Nop())
	r := gin.New()
	r.GET("/blog/posts", c.List)

	w := serve(r, http.MethodGet, "/blog/posts?page=3&size=10&category=go", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "", stub.filter.ViewerID)
	assert.Equal(t, "go", stub.filter.Category)
	assert.Equal(t, uint64(20), stub.filter.Offset)
	assert.Equal(t, uint64(10), stub.filter.Limit)

	var resp struct {
		Data dto.BlogPostListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Posts, 1)
	assert.Equal(t, []string{"go", "career"}, resp.Data.Posts[0].Categories)
	assert.Equal(t, 3, resp.Data.Pagination.TotalPages)
	assert.Equal(t, 3, resp.Data.Pagination.CurrentPage)
}

func TestBlogViewRecordsViewer(t *testing.T) {
	stub := &blogStub{}
	c := NewBlogController(stub, zerolog.Nop())
	r := gin.New()
	r.Use(asUser("t1"))
	r.POST("/blog/posts/:id/view", c.View)

	w := serve(r, http.MethodPost, "/blog/posts/p1/view", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "t1", stub.viewer)
}
