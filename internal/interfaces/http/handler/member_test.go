package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appmember "github.com/gymtrack/backend/internal/application/member"
	"github.com/gymtrack/backend/internal/domain/member"
	"github.com/gymtrack/backend/internal/interfaces/http/dto"
)

// MockMemberRepository is a mock implementation of member.Repository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id uint) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindAll(ctx context.Context) ([]member.Member, error) {
	args := m.Called(ctx)
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindActive(ctx context.Context) ([]member.Member, error) {
	args := m.Called(ctx)
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByNationalID(ctx context.Context, nationalID string) (*member.Member, error) {
	args := m.Called(ctx, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) Search(ctx context.Context, query string) ([]member.Member, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberRepository) Save(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newMemberTestRouter(repo *MockMemberRepository) *gin.Engine {
	service := appmember.NewMemberService(repo, nil, nil, nil)
	h := NewMemberHandler(service, nil)

	r := gin.New()
	r.GET("/members/search", h.Search)
	return r
}

func searchMember(t *testing.T, repo *MockMemberRepository, target string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()

	r := newMemberTestRouter(repo)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestMemberHandler_Search(t *testing.T) {
	repo := new(MockMemberRepository)
	found, err := member.NewMember("GYM-0001", "Ana", "Torres")
	require.NoError(t, err)
	found.ID = 1
	repo.On("Search", mock.Anything, "ana").Return([]member.Member{*found}, nil)

	w, resp := searchMember(t, repo, "/members/search?q=ana")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	repo.AssertExpectations(t)
}

func TestMemberHandler_Search_MissingQueryYieldsEmptyList(t *testing.T) {
	repo := new(MockMemberRepository)

	w, resp := searchMember(t, repo, "/members/search")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	var members []appmember.MemberResponse
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &members))
	assert.Empty(t, members)

	repo.AssertNotCalled(t, "Search")
}
