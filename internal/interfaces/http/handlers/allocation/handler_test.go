package allocation

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetflow/assetflow/internal/application/allocation/dto"
	"github.com/assetflow/assetflow/internal/application/allocation/usecases"
	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/interfaces/http/handlers/testutil"
	"github.com/assetflow/assetflow/internal/shared/errors"
)

type mockAssignUC struct {
	result *dto.AssignResultDTO
	err    error
	got    usecases.AssignCommand
}

func (m *mockAssignUC) Execute(_ context.Context, cmd usecases.AssignCommand) (*dto.AssignResultDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUnassignUC struct {
	result *dto.UnassignResultDTO
	err    error
}

func (m *mockUnassignUC) Execute(_ context.Context, _ usecases.UnassignCommand) (*dto.UnassignResultDTO, error) {
	return m.result, m.err
}

type mockQAListsUC struct {
	result []dto.QAAssetListDTO
	err    error
	got    usecases.ListQAAssetListsQuery
}

func (m *mockQAListsUC) Execute(_ context.Context, q usecases.ListQAAssetListsQuery) ([]dto.QAAssetListDTO, error) {
	m.got = q
	return m.result, m.err
}

type mockGetListUC struct {
	result *dto.AllocationListDetailDTO
	err    error
}

func (m *mockGetListUC) Execute(_ context.Context, _ usecases.GetAllocationListQuery) (*dto.AllocationListDetailDTO, error) {
	return m.result, m.err
}

type testDeps struct {
	assign   *mockAssignUC
	unassign *mockUnassignUC
	qaLists  *mockQAListsUC
	getList  *mockGetListUC
}

func newTestHandler() (*Handler, testDeps) {
	deps := testDeps{
		assign:   &mockAssignUC{},
		unassign: &mockUnassignUC{},
		qaLists:  &mockQAListsUC{},
		getList:  &mockGetListUC{},
	}
	return NewHandler(deps.assign, deps.unassign, deps.qaLists, deps.getList, testutil.NewMockLogger()), deps
}

func TestAssign_Created(t *testing.T) {
	h, deps := newTestHandler()
	deps.assign.result = &dto.AssignResultDTO{
		AllocationLists:   []dto.AllocationListDTO{{ID: 7, Name: "AL-1", UserID: 3}},
		AssignmentDetails: []dto.AssignmentDTO{{AssetID: 10, UserID: 3, Role: "modeler", Status: "accepted"}},
	}
	qa := uint(9)
	body := map[string]any{
		"assetIds":       []uint{10},
		"userIds":        []uint{3},
		"role":           "modeler",
		"bonus":          25,
		"prices":         map[string]float64{"10": 120},
		"pricingOptions": map[string]any{"defaultPrice": 80},
		"provisionalQA":  qa,
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/assets/assign", body)
	testutil.SetAuthContext(c, 1, "admin")

	h.Assign(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var data dto.AssignResultDTO
	resp := testutil.DecodeData(t, w, &data)
	assert.True(t, resp.Success)
	assert.Len(t, data.AllocationLists, 1)
	assert.Len(t, data.AssignmentDetails, 1)

	got := deps.assign.got
	assert.Equal(t, allocation.RoleModeler, got.Role)
	assert.Equal(t, uint(1), got.AssignedBy)
	assert.Equal(t, 120.0, got.Prices[10])
	require.NotNil(t, got.Pricing)
	assert.Equal(t, 80.0, *got.Pricing.DefaultPrice)
	require.NotNil(t, got.ProvisionalQA)
	assert.Equal(t, qa, *got.ProvisionalQA)
}

func TestAssign_RejectsUnknownRole(t *testing.T) {
	h, _ := newTestHandler()
	body := map[string]any{"assetIds": []uint{1}, "userIds": []uint{2}, "role": "client"}
	c, w := testutil.NewTestContext(http.MethodPost, "/assets/assign", body)
	testutil.SetAuthContext(c, 1, "admin")

	h.Assign(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssign_RejectsEmptyAssetIDs(t *testing.T) {
	h, _ := newTestHandler()
	body := map[string]any{"assetIds": []uint{}, "userIds": []uint{2}, "role": "qa"}
	c, w := testutil.NewTestContext(http.MethodPost, "/assets/assign", body)
	testutil.SetAuthContext(c, 1, "admin")

	h.Assign(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssign_RequiresIdentity(t *testing.T) {
	h, _ := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/assets/assign", map[string]any{})

	h.Assign(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAssign_MapsUseCaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"conflict", errors.NewConflictError("asset is not in an assignable state"), http.StatusConflict},
		{"forbidden", errors.NewForbiddenError("user does not hold the modeler role"), http.StatusForbidden},
		{"not found", errors.NewNotFoundError("asset not found"), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler()
			deps.assign.err = tt.err
			body := map[string]any{"assetIds": []uint{1}, "userIds": []uint{2}, "role": "qa"}
			c, w := testutil.NewTestContext(http.MethodPost, "/assets/assign", body)
			testutil.SetAuthContext(c, 1, "admin")

			h.Assign(c)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestUnassign_OK(t *testing.T) {
	h, deps := newTestHandler()
	deps.unassign.result = &dto.UnassignResultDTO{Removed: 2, DeletedLists: 1}
	body := map[string]any{"assetIds": []uint{1, 2}, "userIds": []uint{3}, "role": "modeler"}
	c, w := testutil.NewTestContext(http.MethodDelete, "/assets/assign", body)
	testutil.SetAuthContext(c, 1, "admin")

	h.Unassign(c)

	require.Equal(t, http.StatusOK, w.Code)
	var data dto.UnassignResultDTO
	testutil.DecodeData(t, w, &data)
	assert.Equal(t, int64(1), data.DeletedLists)
}

func TestListQAAssetLists_UsesCaller(t *testing.T) {
	h, deps := newTestHandler()
	deps.qaLists.result = []dto.QAAssetListDTO{{ListID: 4, AssetIDs: []uint{10}}}
	c, w := testutil.NewTestContext(http.MethodGet, "/qa/asset-lists?qaUserId=99", nil)
	testutil.SetAuthContext(c, 5, "qa")

	h.ListQAAssetLists(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), deps.qaLists.got.QAUserID, "non-admins cannot inspect another QA")
}

func TestListQAAssetLists_AdminMayInspect(t *testing.T) {
	h, deps := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/qa/asset-lists?qaUserId=99", nil)
	testutil.SetAuthContext(c, 1, "admin")

	h.ListQAAssetLists(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(99), deps.qaLists.got.QAUserID)
}

func TestGetAllocationList(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		h, _ := newTestHandler()
		c, w := testutil.NewTestContext(http.MethodGet, "/allocation-lists/abc", nil)
		testutil.SetAuthContext(c, 1, "admin")
		testutil.SetURLParam(c, "id", "abc")

		h.GetAllocationList(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not owner", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.getList.err = errors.NewForbiddenError("not allowed to view this allocation list")
		c, w := testutil.NewTestContext(http.MethodGet, "/allocation-lists/3", nil)
		testutil.SetAuthContext(c, 8, "modeler")
		testutil.SetURLParam(c, "id", "3")

		h.GetAllocationList(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("ok", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.getList.result = &dto.AllocationListDetailDTO{AllocationListDTO: dto.AllocationListDTO{ID: 3}}
		c, w := testutil.NewTestContext(http.MethodGet, "/allocation-lists/3", nil)
		testutil.SetAuthContext(c, 1, "admin")
		testutil.SetURLParam(c, "id", "3")

		h.GetAllocationList(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
