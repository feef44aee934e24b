package submissions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"telegroups-backend/models"
	"telegroups-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func submissionRow(mock sqlmock.Sqlmock, id, userID string, status models.SubmissionStatusType) *sqlmock.Rows {
	return mock.NewRows([]string{"id", "user_id", "group_name", "group_username", "category", "members", "status", "submitted_at"}).
		AddRow(id, userID, "DevTR", "devtr", "Yazılım", 500, string(status), time.Now())
}

func TestCreate_InvalidCategory(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/submissions", testutils.AuthMiddleware("user-uuid", "USER"), Create)

	body, _ := json.Marshal(map[string]interface{}{
		"groupUsername": "devtr",
		"category":      "All",
	})

	req, _ := http.NewRequest(http.MethodPost, "/submissions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	assert.Equal(t, "Invalid category", response["error"])
}

func TestCreate_DuplicateSubmission(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	// Une soumission non rejetée existe déjà pour ce handle
	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE group_username = \$1 AND status != \$2`).
		WillReturnRows(submissionRow(mock, "submission-uuid", "other-user", models.SubmissionStatusPending))

	r := testutils.SetupTestRouter()
	r.POST("/submissions", testutils.AuthMiddleware("user-uuid", "USER"), Create)

	body, _ := json.Marshal(map[string]interface{}{
		"groupUsername": "devtr",
		"category":      "Yazılım",
	})

	req, _ := http.NewRequest(http.MethodPost, "/submissions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	assert.Equal(t, "This group has already been submitted", response["error"])
}

// fakeTelegramServer sert les réponses getChat/getChatMemberCount du Bot API
func fakeTelegramServer(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "getChatMemberCount"):
			fmt.Fprint(w, `{"ok":true,"result":1500}`)
		case strings.Contains(r.URL.Path, "getChat"):
			fmt.Fprint(w, `{"ok":true,"result":{"title":"DevTR","username":"devtr","description":"Yazılım sohbeti #golang #telegram","is_verified":false}}`)
		default:
			fmt.Fprint(w, `{"ok":false,"error_code":404,"description":"Not Found"}`)
		}
	}))

	os.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	os.Setenv("TELEGRAM_API_URL", ts.URL)
	t.Cleanup(func() {
		os.Unsetenv("TELEGRAM_BOT_TOKEN")
		os.Unsetenv("TELEGRAM_API_URL")
		ts.Close()
	})

	return ts
}

func TestCreate_AdminAutoApprove(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	fakeTelegramServer(t)

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE group_username = \$1 AND status != \$2`).
		WillReturnRows(mock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "groups" WHERE group_username = \$1`).
		WillReturnRows(mock.NewRows([]string{"id"}))

	// Soumission et entrée du catalogue dans la même transaction
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "submissions" (.+) RETURNING "id"`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("submission-uuid"))
	mock.ExpectQuery(`INSERT INTO "groups" (.+) RETURNING "id"`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("group-uuid"))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/submissions", testutils.AuthMiddleware("admin-uuid", "ADMIN"), Create)

	body, _ := json.Marshal(map[string]interface{}{
		"groupUsername": "devtr",
		"category":      "Yazılım",
		"tags":          []string{"kariyer"},
	})

	req, _ := http.NewRequest(http.MethodPost, "/submissions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var submission models.Submission
	json.Unmarshal(resp.Body.Bytes(), &submission)
	assert.Equal(t, models.SubmissionStatusApproved, submission.Status)
	assert.Equal(t, "DevTR", submission.GroupName)
	assert.Equal(t, 1500, submission.Members)
	// Tags du groupe d'abord, tags additionnels ensuite, sans doublon
	assert.Equal(t, []string{"golang", "telegram", "kariyer"}, submission.Tags)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMySubmissions_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE user_id = \$1 ORDER BY submitted_at DESC, id DESC`).
		WithArgs("user-uuid").
		WillReturnRows(submissionRow(mock, "submission-uuid", "user-uuid", models.SubmissionStatusPending))

	r := testutils.SetupTestRouter()
	r.GET("/submissions", testutils.AuthMiddleware("user-uuid", "USER"), GetMySubmissions)

	req, _ := http.NewRequest(http.MethodGet, "/submissions", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var submissions []models.Submission
	json.Unmarshal(resp.Body.Bytes(), &submissions)
	assert.Len(t, submissions, 1)
	assert.Equal(t, "DevTR", submissions[0].GroupName)
	assert.Equal(t, models.SubmissionStatusPending, submissions[0].Status)
}

func TestApprove_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE id = \$1`).
		WillReturnRows(submissionRow(mock, "submission-uuid", "user-uuid", models.SubmissionStatusPending))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "groups" WHERE group_username = \$1`).
		WillReturnRows(mock.NewRows([]string{"id"}))
	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "groups" (.+) RETURNING "id"`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("group-uuid"))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.PUT("/submissions/:id/approve", testutils.AuthMiddleware("admin-uuid", "ADMIN"), Approve)

	req, _ := http.NewRequest(http.MethodPut, "/submissions/submission-uuid/approve", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var group models.Group
	json.Unmarshal(resp.Body.Bytes(), &group)
	assert.Equal(t, "submission-uuid", group.SubmissionID)
	assert.Equal(t, "user-uuid", group.UserID)
	assert.True(t, group.Approved)
}

func TestApprove_NotPending(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE id = \$1`).
		WillReturnRows(submissionRow(mock, "submission-uuid", "user-uuid", models.SubmissionStatusApproved))

	// La précondition est revérifiée à l'écriture: aucune ligne touchée
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "groups" WHERE group_username = \$1`).
		WillReturnRows(mock.NewRows([]string{"id"}))
	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	r := testutils.SetupTestRouter()
	r.PUT("/submissions/:id/approve", testutils.AuthMiddleware("admin-uuid", "ADMIN"), Approve)

	req, _ := http.NewRequest(http.MethodPut, "/submissions/submission-uuid/approve", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	assert.Equal(t, "Submission is not pending", response["error"])
}

func TestApprove_HandleAlreadyListed(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE id = \$1`).
		WillReturnRows(submissionRow(mock, "submission-uuid", "user-uuid", models.SubmissionStatusPending))

	// Le même handle a été approuvé via une autre soumission entre temps
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "groups" WHERE group_username = \$1`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("group-uuid"))
	mock.ExpectRollback()

	r := testutils.SetupTestRouter()
	r.PUT("/submissions/:id/approve", testutils.AuthMiddleware("admin-uuid", "ADMIN"), Approve)

	req, _ := http.NewRequest(http.MethodPut, "/submissions/submission-uuid/approve", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	assert.Equal(t, "This group is already listed in the directory", response["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE id = \$1`).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.PUT("/submissions/:id/approve", testutils.AuthMiddleware("admin-uuid", "ADMIN"), Approve)

	req, _ := http.NewRequest(http.MethodPut, "/submissions/unknown-uuid/approve", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestReject_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE id = \$1`).
		WillReturnRows(submissionRow(mock, "submission-uuid", "user-uuid", models.SubmissionStatusPending))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.PUT("/submissions/:id/reject", testutils.AuthMiddleware("admin-uuid", "ADMIN"), Reject)

	body, _ := json.Marshal(map[string]string{"reason": "Duplicate listing"})
	req, _ := http.NewRequest(http.MethodPut, "/submissions/submission-uuid/reject", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	assert.Equal(t, "Submission rejected", response["message"])
}

func TestReject_BlankReason(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.PUT("/submissions/:id/reject", testutils.AuthMiddleware("admin-uuid", "ADMIN"), Reject)

	body, _ := json.Marshal(map[string]string{"reason": "   "})
	req, _ := http.NewRequest(http.MethodPut, "/submissions/submission-uuid/reject", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	assert.Equal(t, "Rejection reason cannot be blank", response["error"])
}

func TestReject_NotPending(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE id = \$1`).
		WillReturnRows(submissionRow(mock, "submission-uuid", "user-uuid", models.SubmissionStatusRejected))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.PUT("/submissions/:id/reject", testutils.AuthMiddleware("admin-uuid", "ADMIN"), Reject)

	body, _ := json.Marshal(map[string]string{"reason": "Too late"})
	req, _ := http.NewRequest(http.MethodPut, "/submissions/submission-uuid/reject", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestResubmit_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE id = \$1`).
		WillReturnRows(submissionRow(mock, "submission-uuid", "user-uuid", models.SubmissionStatusRejected))

	// Les contrôles de doublon de la création sont rejoués
	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE group_username = \$1 AND id != \$2 AND status != \$3`).
		WillReturnRows(mock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "groups" WHERE group_username = \$1`).
		WillReturnRows(mock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/submissions/:id/resubmit", testutils.AuthMiddleware("user-uuid", "USER"), Resubmit)

	req, _ := http.NewRequest(http.MethodPost, "/submissions/submission-uuid/resubmit", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var submission models.Submission
	json.Unmarshal(resp.Body.Bytes(), &submission)
	assert.Equal(t, models.SubmissionStatusPending, submission.Status)
	assert.Empty(t, submission.RejectionReason)
	assert.Empty(t, submission.ReviewedBy)
	assert.Nil(t, submission.ReviewedAt)
}

func TestResubmit_NotOwner(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE id = \$1`).
		WillReturnRows(submissionRow(mock, "submission-uuid", "user-uuid", models.SubmissionStatusRejected))

	r := testutils.SetupTestRouter()
	r.POST("/submissions/:id/resubmit", testutils.AuthMiddleware("intruder-uuid", "USER"), Resubmit)

	req, _ := http.NewRequest(http.MethodPost, "/submissions/submission-uuid/resubmit", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	assert.Equal(t, "Only the owner can resubmit a submission", response["error"])
}

func TestResubmit_NotRejected(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE id = \$1`).
		WillReturnRows(submissionRow(mock, "submission-uuid", "user-uuid", models.SubmissionStatusPending))

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE group_username = \$1 AND id != \$2 AND status != \$3`).
		WillReturnRows(mock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "groups" WHERE group_username = \$1`).
		WillReturnRows(mock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/submissions/:id/resubmit", testutils.AuthMiddleware("user-uuid", "USER"), Resubmit)

	req, _ := http.NewRequest(http.MethodPost, "/submissions/submission-uuid/resubmit", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestResubmit_HandleAlreadyListed(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE id = \$1`).
		WillReturnRows(submissionRow(mock, "submission-uuid", "user-uuid", models.SubmissionStatusRejected))

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE group_username = \$1 AND id != \$2 AND status != \$3`).
		WillReturnRows(mock.NewRows([]string{"id"}))
	// Déjà listé dans le catalogue: la remise en file est refusée
	mock.ExpectQuery(`SELECT \* FROM "groups" WHERE group_username = \$1`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("group-uuid"))

	r := testutils.SetupTestRouter()
	r.POST("/submissions/:id/resubmit", testutils.AuthMiddleware("user-uuid", "USER"), Resubmit)

	req, _ := http.NewRequest(http.MethodPost, "/submissions/submission-uuid/resubmit", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	assert.Equal(t, "This group is already listed in the directory", response["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotPending(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE id = \$1`).
		WillReturnRows(submissionRow(mock, "submission-uuid", "user-uuid", models.SubmissionStatusApproved))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "submissions"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.DELETE("/submissions/:id", testutils.AuthMiddleware("user-uuid", "USER"), Delete)

	req, _ := http.NewRequest(http.MethodDelete, "/submissions/submission-uuid", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestGetSubmissionStats_DerivedCounts(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "submissions" WHERE status = \$1`).
		WithArgs("PENDING").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "submissions" WHERE status = \$1`).
		WithArgs("APPROVED").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "submissions" WHERE status = \$1`).
		WithArgs("REJECTED").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(2))

	r := testutils.SetupTestRouter()
	r.GET("/submissions/stats", testutils.AuthMiddleware("admin-uuid", "ADMIN"), GetSubmissionStats)

	req, _ := http.NewRequest(http.MethodGet, "/submissions/stats", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var stats map[string]int64
	json.Unmarshal(resp.Body.Bytes(), &stats)
	assert.Equal(t, int64(3), stats["pending"])
	assert.Equal(t, int64(12), stats["approved"])
	assert.Equal(t, int64(2), stats["rejected"])
	assert.Equal(t, int64(17), stats["total"])
}
