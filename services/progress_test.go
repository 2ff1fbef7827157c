package services

import (
	"coursebay/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCompletedEnrollment(t *testing.T, db *gorm.DB, studentID, courseID uint) *models.Enrollment {
	t.Helper()

	result, err := InitiatePayment(db, studentID, courseID, "")
	require.NoError(t, err)

	outcome, err := ReconcilePayment(db, &WebhookPayload{
		TransactionID: result.Enrollment.TransactionID,
		PaymentStatus: GatewayStatusCompleted,
		Amount:        result.FinalAmount,
	})
	require.NoError(t, err)
	return outcome.Enrollment
}

func TestCompleteLectureProgression(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 4)
	lectures := courseLectures(t, db, course.ID)
	enrollment := seedCompletedEnrollment(t, db, student.ID, course.ID)

	updated, err := CompleteLecture(db, enrollment.ID, lectures[0].ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Progress)
	assert.Equal(t, models.CompletionInProgress, updated.CompletionStatus)

	updated, err = CompleteLecture(db, enrollment.ID, lectures[1].ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, updated.Progress)

	updated, err = CompleteLecture(db, enrollment.ID, lectures[2].ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, updated.Progress)
	assert.Equal(t, models.CompletionInProgress, updated.CompletionStatus)

	updated, err = CompleteLecture(db, enrollment.ID, lectures[3].ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Progress)
	assert.Equal(t, models.CompletionCompleted, updated.CompletionStatus)
	assert.Len(t, updated.CompletedLectures, 4)
}

func TestCompleteLectureIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 4)
	lectures := courseLectures(t, db, course.ID)
	enrollment := seedCompletedEnrollment(t, db, student.ID, course.ID)

	_, err := CompleteLecture(db, enrollment.ID, lectures[0].ID, student.ID)
	require.NoError(t, err)

	updated, err := CompleteLecture(db, enrollment.ID, lectures[0].ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Progress)
	assert.Len(t, updated.CompletedLectures, 1)
}

func TestIncompleteLectureRevertsCompletion(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 4)
	lectures := courseLectures(t, db, course.ID)
	enrollment := seedCompletedEnrollment(t, db, student.ID, course.ID)

	for _, lecture := range lectures {
		_, err := CompleteLecture(db, enrollment.ID, lecture.ID, student.ID)
		require.NoError(t, err)
	}

	updated, err := IncompleteLecture(db, enrollment.ID, lectures[3].ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, updated.Progress)
	assert.Equal(t, models.CompletionInProgress, updated.CompletionStatus)
	assert.Len(t, updated.CompletedLectures, 3)
}

func TestIncompleteLectureNeverCompletedIsNoop(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 4)
	lectures := courseLectures(t, db, course.ID)
	enrollment := seedCompletedEnrollment(t, db, student.ID, course.ID)

	updated, err := IncompleteLecture(db, enrollment.ID, lectures[0].ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Progress)
	assert.Empty(t, updated.CompletedLectures)
}

func TestCompleteLectureRejectsNonOwner(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	intruder := seedStudent(t, db, "intruder@example.com")
	course := seedCourse(t, db, 1000, 2)
	lectures := courseLectures(t, db, course.ID)
	enrollment := seedCompletedEnrollment(t, db, student.ID, course.ID)

	_, err := CompleteLecture(db, enrollment.ID, lectures[0].ID, intruder.ID)
	assert.ErrorIs(t, err, ErrNotEnrollmentOwner)
}

func TestCompleteLectureRejectsLectureFromOtherCourse(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 2)
	other := seedCourse(t, db, 500, 1)
	otherLectures := courseLectures(t, db, other.ID)
	enrollment := seedCompletedEnrollment(t, db, student.ID, course.ID)

	_, err := CompleteLecture(db, enrollment.ID, otherLectures[0].ID, student.ID)
	assert.ErrorIs(t, err, ErrLectureNotFound)
}

func TestCompleteLectureUnknownEnrollment(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")

	_, err := CompleteLecture(db, 9999, 1, student.ID)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestSoftDeletedLecturesExcludedFromProgress(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")
	course := seedCourse(t, db, 1000, 3)
	lectures := courseLectures(t, db, course.ID)
	enrollment := seedCompletedEnrollment(t, db, student.ID, course.ID)

	require.NoError(t, db.Model(&lectures[2]).UpdateColumn("is_deleted", true).Error)

	updated, err := CompleteLecture(db, enrollment.ID, lectures[0].ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, updated.Progress)
}
