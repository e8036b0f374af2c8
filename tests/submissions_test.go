package tests

import (
	"fmt"
	"testing"

	"examportal/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func submissionPayload(testID, studentID, facultyID uint) map[string]interface{} {
	return map[string]interface{}{
		"test_id":    testID,
		"student_id": studentID,
		"faculty_id": facultyID,
		"submitted_ans": []map[string]interface{}{
			{"qsn_no": 1, "ans": 3},
		},
	}
}

// Full flow: batch, student, confirmed test, student-visible listing
// without answers, submission, evaluation.
func TestSubmissionEndToEnd(t *testing.T) {
	facultyToken, facultyID := registerFaculty(t, "E2E Faculty", "e2e.faculty")
	batchID := createBatch(t, facultyToken, "B1")
	studentToken, studentID := registerStudent(t, "E2E Student", "s1", "B1")
	testID := createTest(t, facultyToken, facultyID, batchID)

	resp, _ := request(t, "POST", fmt.Sprintf("/api/tests/%d", testID), facultyToken,
		map[string]interface{}{"faculty_id": facultyID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, list := requestList(t, "GET", fmt.Sprintf("/api/tests?batch_id=%d", batchID), studentToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, list, 1)
	listed := list[0].(map[string]interface{})
	assert.Equal(t, float64(testID), listed["id"])
	assert.NotContains(t, listed, "answers")

	resp, submission := request(t, "POST", "/api/submissions", studentToken,
		submissionPayload(testID, studentID, facultyID))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, submission["isEvaluated"])
	submissionID := uint(submission["id"].(float64))

	// Submitting appends the student to the test's submitted_by list.
	var test models.Test
	assert.NoError(t, db.First(&test, testID).Error)
	assert.Contains(t, test.SubmittedBy, studentID)

	resp, result := request(t, "POST", fmt.Sprintf("/api/submissions/%d", submissionID), facultyToken,
		map[string]interface{}{"faculty_id": facultyID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Submission evaluated", result["msg"])

	var stored models.Submission
	assert.NoError(t, db.First(&stored, submissionID).Error)
	assert.True(t, stored.IsEvaluated)
}

// A second submission for the same (test, student) pair is always
// rejected: the duplicate check is one query matching both fields.
func TestDuplicateSubmissionRejected(t *testing.T) {
	facultyToken, facultyID := registerFaculty(t, "Dup Faculty", "dup.faculty")
	batchID := createBatch(t, facultyToken, "dup-batch")
	studentToken, studentID := registerStudent(t, "Dup Student", "dup.student", "dup-batch")
	testID := createTest(t, facultyToken, facultyID, batchID)

	resp, _ := request(t, "POST", "/api/submissions", studentToken,
		submissionPayload(testID, studentID, facultyID))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, result := request(t, "POST", "/api/submissions", studentToken,
		submissionPayload(testID, studentID, facultyID))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "This student already submitted the test", result["msg"])
}

// A student with a prior submission for a different test must not be
// blocked from submitting a new one.
func TestSubmissionOtherTestNotBlocked(t *testing.T) {
	facultyToken, facultyID := registerFaculty(t, "Cross Faculty", "cross.faculty")
	batchID := createBatch(t, facultyToken, "cross-batch")
	studentToken, studentID := registerStudent(t, "Cross Student", "cross.student", "cross-batch")
	firstTest := createTest(t, facultyToken, facultyID, batchID)
	secondTest := createTest(t, facultyToken, facultyID, batchID)

	resp, _ := request(t, "POST", "/api/submissions", studentToken,
		submissionPayload(firstTest, studentID, facultyID))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = request(t, "POST", "/api/submissions", studentToken,
		submissionPayload(secondTest, studentID, facultyID))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFacultyCannotSubmit(t *testing.T) {
	facultyToken, facultyID := registerFaculty(t, "No Submit", "no.submit.faculty")
	batchID := createBatch(t, facultyToken, "no-submit-batch")
	_, studentID := registerStudent(t, "No Submit Student", "no.submit.student", "no-submit-batch")
	testID := createTest(t, facultyToken, facultyID, batchID)

	resp, result := request(t, "POST", "/api/submissions", facultyToken,
		submissionPayload(testID, studentID, facultyID))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Faculty can not add a submission", result["msg"])
}

func TestEvaluateSubmissionWrongFaculty(t *testing.T) {
	facultyToken, facultyID := registerFaculty(t, "Eval Owner", "eval.owner")
	_, otherID := registerFaculty(t, "Eval Other", "eval.other")
	batchID := createBatch(t, facultyToken, "eval-batch")
	studentToken, studentID := registerStudent(t, "Eval Student", "eval.student", "eval-batch")
	testID := createTest(t, facultyToken, facultyID, batchID)

	resp, submission := request(t, "POST", "/api/submissions", studentToken,
		submissionPayload(testID, studentID, facultyID))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	submissionID := uint(submission["id"].(float64))

	resp, result := request(t, "POST", fmt.Sprintf("/api/submissions/%d", submissionID), facultyToken,
		map[string]interface{}{"faculty_id": otherID})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Submission can't be evaluated by this faculty", result["msg"])

	var stored models.Submission
	assert.NoError(t, db.First(&stored, submissionID).Error)
	assert.False(t, stored.IsEvaluated)
}

func TestRecordScore(t *testing.T) {
	facultyToken, facultyID := registerFaculty(t, "Score Faculty", "score.faculty")
	batchID := createBatch(t, facultyToken, "score-batch")
	studentToken, studentID := registerStudent(t, "Score Student", "score.student", "score-batch")
	testID := createTest(t, facultyToken, facultyID, batchID)

	scorePath := fmt.Sprintf("/api/students/score/%d", studentID)
	body := map[string]interface{}{"test_id": testID, "score": 17}

	// Students cannot record scores.
	resp, _ := request(t, "PUT", scorePath, studentToken, body)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, result := request(t, "PUT", scorePath, facultyToken, body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	scores := result["scores"].([]interface{})
	assert.Len(t, scores, 1)
	entry := scores[0].(map[string]interface{})
	assert.Equal(t, float64(testID), entry["test_id"])
	assert.Equal(t, float64(17), entry["score"])

	// One score per (student, test) pair.
	resp, result = request(t, "PUT", scorePath, facultyToken, body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Score already added for this test", result["msg"])

	// Unknown test
	resp, result = request(t, "PUT", scorePath, facultyToken,
		map[string]interface{}{"test_id": 999999, "score": 5})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Test not found", result["msg"])
}
