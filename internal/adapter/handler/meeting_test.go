package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
)

type meetingPage struct {
	Items      []entities.Meeting `json:"items"`
	Pagination struct {
		Limit  int   `json:"limit"`
		Offset int   `json:"offset"`
		Total  int64 `json:"total"`
	} `json:"pagination"`
}

func TestCreateMeeting_FallsBackWhenModelUnavailable(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, s.salesperson, http.MethodPost, "/v1/meetings", map[string]interface{}{
		"project_name":    "Riverside Loft",
		"client_name":     "Ms. Lan",
		"meeting_stage":   "initial",
		"transcript_text": "Open kitchen, warm wood, budget around 800 million.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Meeting          entities.Meeting     `json:"meeting"`
		Analysis         *entities.AIAnalysis `json:"analysis"`
		AnalysisDegraded bool                 `json:"analysis_degraded"`
	}
	decodeData(t, rec, &created)
	assert.Equal(t, s.salesperson.ID, created.Meeting.SalespersonID)
	assert.Equal(t, entities.CaseInProgress, created.Meeting.CaseStatus)
	assert.Equal(t, entities.TranscriptManual, created.Meeting.TranscriptSource)
	assert.True(t, created.AnalysisDegraded)
	require.NotNil(t, created.Analysis)
	assert.Equal(t, created.Meeting.ID, created.Analysis.MeetingID)
}

func TestCreateMeeting_Validation(t *testing.T) {
	s := newServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "missing transcript", body: map[string]interface{}{"project_name": "P", "client_name": "C", "meeting_stage": "initial"}},
		{name: "unknown stage", body: map[string]interface{}{"project_name": "P", "client_name": "C", "meeting_stage": "fourth", "transcript_text": "t"}},
		{name: "unknown source", body: map[string]interface{}{"project_name": "P", "client_name": "C", "meeting_stage": "initial", "transcript_text": "t", "transcript_source": "fax"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, s.salesperson, http.MethodPost, "/v1/meetings", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, int(errors.ErrorCode_VALIDATION), decode(t, rec).Code)
		})
	}

	rec := s.do(t, s.salesperson, http.MethodPost, "/v1/meetings", "not an object")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_INVALID_PAYLOAD), decode(t, rec).Code)
}

func TestListMeetings_Scoped(t *testing.T) {
	s := newServer(t)
	other := s.addUser(t, "sue", entities.RoleSalesperson)

	mine := s.createMeeting(t, s.salesperson)
	s.createMeeting(t, other)
	s.createMeeting(t, s.admin)

	rec := s.do(t, s.salesperson, http.MethodGet, "/v1/meetings", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page meetingPage
	decodeData(t, rec, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, mine, page.Items[0].ID)
	assert.EqualValues(t, 1, page.Pagination.Total)
	assert.Equal(t, 20, page.Pagination.Limit)

	rec = s.do(t, s.evaluator, http.MethodGet, "/v1/meetings?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page = meetingPage{}
	decodeData(t, rec, &page)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 3, page.Pagination.Total)

	rec = s.do(t, s.guest, http.MethodGet, "/v1/meetings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = meetingPage{}
	decodeData(t, rec, &page)
	assert.Empty(t, page.Items)
}

func TestListMeetings_BadFilter(t *testing.T) {
	s := newServer(t)

	for _, q := range []string{"status=lost", "stage=fourth", "limit=500", "offset=-1"} {
		rec := s.do(t, s.admin, http.MethodGet, "/v1/meetings?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestGetMeeting(t *testing.T) {
	s := newServer(t)
	other := s.addUser(t, "sue", entities.RoleSalesperson)
	id := s.createMeeting(t, s.salesperson)

	rec := s.do(t, s.salesperson, http.MethodGet, "/v1/meetings/"+id.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var m entities.Meeting
	decodeData(t, rec, &m)
	assert.Equal(t, "Riverside Loft", m.ProjectName)

	// another salesperson's meeting is indistinguishable from a missing one
	rec = s.do(t, other, http.MethodGet, "/v1/meetings/"+id.String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_NOT_FOUND), decode(t, rec).Code)

	rec = s.do(t, s.salesperson, http.MethodGet, "/v1/meetings/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, s.salesperson, http.MethodGet, "/v1/meetings/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_INVALID_ARGUMENT), decode(t, rec).Code)
}

func TestUpdateStatus(t *testing.T) {
	s := newServer(t)
	id := s.createMeeting(t, s.salesperson)

	rec := s.do(t, s.salesperson, http.MethodPatch, "/v1/meetings/"+id.String()+"/status", map[string]string{"status": "success"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var m entities.Meeting
	decodeData(t, rec, &m)
	assert.Equal(t, entities.CaseSuccess, m.CaseStatus)

	rec = s.do(t, s.salesperson, http.MethodPatch, "/v1/meetings/"+id.String()+"/status", map[string]string{"status": "won"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMeeting(t *testing.T) {
	s := newServer(t)
	id := s.createMeeting(t, s.salesperson)

	rec := s.do(t, s.salesperson, http.MethodDelete, "/v1/meetings/"+id.String(), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, s.admin, http.MethodDelete, "/v1/meetings/"+id.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, s.admin, http.MethodGet, "/v1/meetings/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, s.admin, http.MethodGet, "/v1/meetings/"+id.String()+"/analysis", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSuggestName_Degraded(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, s.salesperson, http.MethodPost, "/v1/meetings/suggest-name", map[string]string{
		"transcript_text": "A three bedroom apartment in District 2.",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var suggestion struct {
		ProjectName string `json:"project_name"`
		Degraded    bool   `json:"degraded"`
	}
	decodeData(t, rec, &suggestion)
	assert.True(t, suggestion.Degraded)
	assert.NotEmpty(t, suggestion.ProjectName)
}

func TestAnalysis(t *testing.T) {
	s := newServer(t)
	id := s.createMeeting(t, s.salesperson)

	rec := s.do(t, s.salesperson, http.MethodGet, "/v1/meetings/"+id.String()+"/analysis", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var a entities.AIAnalysis
	decodeData(t, rec, &a)
	assert.Equal(t, id, a.MeetingID)

	// a stored fallback can be replaced by a fresh run
	rec = s.do(t, s.salesperson, http.MethodPost, "/v1/meetings/"+id.String()+"/analysis", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var result struct {
		Degraded bool `json:"degraded"`
	}
	decodeData(t, rec, &result)
	assert.True(t, result.Degraded)
}

func TestFailedCase_MarksMeetingFailed(t *testing.T) {
	s := newServer(t)
	id := s.createMeeting(t, s.salesperson)

	rec := s.do(t, s.salesperson, http.MethodPost, "/v1/failed-cases", map[string]interface{}{
		"meeting_id":        id.String(),
		"failure_stage":     "second",
		"failure_reasons":   []string{"budget_mismatch", "competitor"},
		"detailed_analysis": "Client signed with a cheaper studio.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, s.salesperson, http.MethodGet, "/v1/meetings/"+id.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var m entities.Meeting
	decodeData(t, rec, &m)
	assert.Equal(t, entities.CaseFailed, m.CaseStatus)

	rec = s.do(t, s.salesperson, http.MethodGet, "/v1/meetings/"+id.String()+"/failed-case", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var fc entities.FailedCase
	decodeData(t, rec, &fc)
	assert.Equal(t, "Ms. Lan", fc.ClientName)

	rec = s.do(t, s.salesperson, http.MethodPost, "/v1/failed-cases", map[string]interface{}{
		"meeting_id":        id.String(),
		"failure_stage":     "second",
		"failure_reasons":   []string{"weather"},
		"detailed_analysis": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
