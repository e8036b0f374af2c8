package tests

import (
	"fmt"
	"testing"

	"examportal/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateTest(t *testing.T) {
	facultyToken, facultyID := registerFaculty(t, "Test Maker", "test.maker")
	batchID := createBatch(t, facultyToken, "test-maker-batch")

	resp, result := request(t, "POST", "/api/tests", facultyToken, testPayload(facultyID, batchID))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, result["isConfirmed"])
	assert.Equal(t, false, result["isCompleted"])
	details := result["test_details"].(map[string]interface{})
	assert.Equal(t, "Midterm", details["name"])

	// Unknown batch
	resp, result = request(t, "POST", "/api/tests", facultyToken, testPayload(facultyID, 999999))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Batch not found", result["msg"])
}

func TestCreateTestStudentForbidden(t *testing.T) {
	facultyToken, facultyID := registerFaculty(t, "Test Owner", "test.owner.f")
	batchID := createBatch(t, facultyToken, "student-forbidden-batch")
	studentToken, _ := registerStudent(t, "Sneaky Student", "sneaky.student", "student-forbidden-batch")

	resp, result := request(t, "POST", "/api/tests", studentToken, testPayload(facultyID, batchID))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized action", result["msg"])
}

func TestCreateTestRejectsBadAnswer(t *testing.T) {
	facultyToken, facultyID := registerFaculty(t, "Answer Checker", "answer.checker")
	batchID := createBatch(t, facultyToken, "answer-check-batch")

	payload := testPayload(facultyID, batchID)
	payload["answers"] = []map[string]interface{}{{"qsn_no": 1, "ans": 5}}

	resp, _ := request(t, "POST", "/api/tests", facultyToken, payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// Confirming with a faculty id that does not own the test is rejected
// and leaves isConfirmed untouched.
func TestConfirmTestWrongFaculty(t *testing.T) {
	ownerToken, ownerID := registerFaculty(t, "Owner", "confirm.owner")
	_, otherID := registerFaculty(t, "Other", "confirm.other")
	batchID := createBatch(t, ownerToken, "confirm-batch")
	testID := createTest(t, ownerToken, ownerID, batchID)

	resp, result := request(t, "POST", fmt.Sprintf("/api/tests/%d", testID), ownerToken,
		map[string]interface{}{"faculty_id": otherID})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Test can't be confirmed by this faculty", result["msg"])

	var test models.Test
	assert.NoError(t, db.First(&test, testID).Error)
	assert.False(t, test.IsConfirmed)
}

func TestConfirmAndDismiss(t *testing.T) {
	facultyToken, facultyID := registerFaculty(t, "Lifecycle", "lifecycle.faculty")
	batchID := createBatch(t, facultyToken, "lifecycle-batch")
	_, studentID := registerStudent(t, "Lifecycle Student", "lifecycle.student", "lifecycle-batch")
	testID := createTest(t, facultyToken, facultyID, batchID)

	resp, result := request(t, "POST", fmt.Sprintf("/api/tests/%d", testID), facultyToken,
		map[string]interface{}{"faculty_id": facultyID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Test confirmed, now students can see the test", result["msg"])

	var test models.Test
	assert.NoError(t, db.First(&test, testID).Error)
	assert.True(t, test.IsConfirmed)

	// Confirmation assigns the test to the batch's students.
	var student models.Student
	assert.NoError(t, db.Preload("AssignedTests").First(&student, studentID).Error)
	assigned := false
	for _, at := range student.AssignedTests {
		if at.ID == testID {
			assigned = true
		}
	}
	assert.True(t, assigned)

	resp, result = request(t, "POST", fmt.Sprintf("/api/tests/dismiss/%d", testID), facultyToken,
		map[string]interface{}{"faculty_id": facultyID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Test dismissed", result["msg"])

	test = models.Test{}
	assert.NoError(t, db.First(&test, testID).Error)
	assert.True(t, test.IsCompleted)
	assert.True(t, test.IsConfirmed, "dismiss must not un-confirm")
}

func TestListTestsAsStudent(t *testing.T) {
	facultyToken, facultyID := registerFaculty(t, "Lister", "list.faculty")
	batchID := createBatch(t, facultyToken, "list-batch")
	studentToken, _ := registerStudent(t, "List Student", "list.student", "list-batch")

	confirmedID := createTest(t, facultyToken, facultyID, batchID)
	createTest(t, facultyToken, facultyID, batchID) // stays a draft

	resp, _ := request(t, "POST", fmt.Sprintf("/api/tests/%d", confirmedID), facultyToken,
		map[string]interface{}{"faculty_id": facultyID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// batch_id is mandatory for students.
	resp, result := request(t, "GET", "/api/tests", studentToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Batch id is required", result["msg"])

	resp, list := requestList(t, "GET", fmt.Sprintf("/api/tests?batch_id=%d", batchID), studentToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, list, 1, "only the confirmed test is visible")

	for _, item := range list {
		test := item.(map[string]interface{})
		assert.NotContains(t, test, "answers")
		assert.Contains(t, test, "questions")
		assert.Equal(t, float64(confirmedID), test["id"])
	}
}

func TestListTestsAsFacultyIncludesAnswers(t *testing.T) {
	facultyToken, facultyID := registerFaculty(t, "Full Lister", "full.list.faculty")
	batchID := createBatch(t, facultyToken, "full-list-batch")
	testID := createTest(t, facultyToken, facultyID, batchID)

	resp, list := requestList(t, "GET", "/api/tests", facultyToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	found := false
	for _, item := range list {
		test := item.(map[string]interface{})
		if test["id"] == float64(testID) {
			found = true
			assert.Contains(t, test, "answers")
			answers := test["answers"].([]interface{})
			assert.NotEmpty(t, answers)
		}
	}
	assert.True(t, found)
}

func TestUpdateTestOwnership(t *testing.T) {
	ownerToken, ownerID := registerFaculty(t, "Update Owner", "update.owner")
	_, otherID := registerFaculty(t, "Update Other", "update.other")
	batchID := createBatch(t, ownerToken, "update-test-batch")
	testID := createTest(t, ownerToken, ownerID, batchID)

	payload := testPayload(otherID, batchID)
	resp, result := request(t, "PUT", fmt.Sprintf("/api/tests/%d", testID), ownerToken, payload)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Test can't be updated by this faculty", result["msg"])

	payload = testPayload(ownerID, batchID)
	payload["test_details"].(map[string]interface{})["name"] = "Midterm (revised)"
	resp, result = request(t, "PUT", fmt.Sprintf("/api/tests/%d", testID), ownerToken, payload)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	details := result["test_details"].(map[string]interface{})
	assert.Equal(t, "Midterm (revised)", details["name"])
}

func TestDeleteTestOwnership(t *testing.T) {
	ownerToken, ownerID := registerFaculty(t, "Delete Owner", "delete.owner")
	_, otherID := registerFaculty(t, "Delete Other", "delete.other")
	batchID := createBatch(t, ownerToken, "delete-test-batch")
	testID := createTest(t, ownerToken, ownerID, batchID)

	resp, result := request(t, "DELETE", fmt.Sprintf("/api/tests/%d", testID), ownerToken,
		map[string]interface{}{"faculty_id": otherID})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Test can't be removed by this faculty", result["msg"])

	resp, result = request(t, "DELETE", fmt.Sprintf("/api/tests/%d", testID), ownerToken,
		map[string]interface{}{"faculty_id": ownerID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Removed Midterm", result["msg"])

	var count int64
	db.Model(&models.Test{}).Where("id = ?", testID).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.TestQuestion{}).Where("test_id = ?", testID).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.TestAnswer{}).Where("test_id = ?", testID).Count(&count)
	assert.Equal(t, int64(0), count)
}
