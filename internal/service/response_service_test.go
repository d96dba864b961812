package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upm-platform/complaint-service/internal/domain"
)

type responseFixture struct {
	complaintSvc *ComplaintService
	svc          *ResponseService
	users        *memUserRepo
	complaints   *memComplaintRepo
	responses    *memResponseRepo
}

func newResponseFixture() *responseFixture {
	users := newMemUserRepo()
	responses := newMemResponseRepo()
	complaints := newMemComplaintRepo(responses)
	complaintSvc := NewComplaintService(ComplaintDependencies{
		ComplaintRepo: complaints,
		ResponseRepo:  responses,
		UserRepo:      users,
		DailyLimit:    2,
		MinFieldLen:   3,
	})
	svc := NewResponseService(ResponseDependencies{
		ComplaintRepo:  complaints,
		ResponseRepo:   responses,
		MinResponseLen: 4,
		RatingMin:      1,
		RatingMax:      5,
	})
	return &responseFixture{
		complaintSvc: complaintSvc,
		svc:          svc,
		users:        users,
		complaints:   complaints,
		responses:    responses,
	}
}

func (f *responseFixture) seed(t *testing.T) (student, admin *domain.User, complaint *domain.Complaint) {
	t.Helper()
	ctx := context.Background()
	student = &domain.User{Email: "4410234@upm.edu.sa", UserType: domain.UserTypeStudent}
	admin = &domain.User{Email: "ahmed@upm.edu.sa", UserType: domain.UserTypeAdmin}
	require.NoError(t, f.users.Create(ctx, student))
	require.NoError(t, f.users.Create(ctx, admin))

	var err error
	complaint, err = f.complaintSvc.Submit(ctx, student, "Wifi issue", "Wifi is down in block A")
	require.NoError(t, err)
	return student, admin, complaint
}

func TestRespondEnforcesMinimumLength(t *testing.T) {
	f := newResponseFixture()
	ctx := context.Background()
	student, admin, complaint := f.seed(t)

	_, err := f.svc.Respond(ctx, admin, complaint.ID, "Oka")
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	response, err := f.svc.Respond(ctx, admin, complaint.ID, "Okay")
	require.NoError(t, err)
	assert.Equal(t, "Okay", response.Text)
	assert.Equal(t, admin.ID, response.AdminID)

	// the reply shows up in the owner's detail view
	_, responses, err := f.complaintSvc.Detail(ctx, student, complaint.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "Okay", responses[0].Text)
}

func TestReplyOnlyRequiresNonEmptyText(t *testing.T) {
	f := newResponseFixture()
	ctx := context.Background()
	_, admin, complaint := f.seed(t)

	_, err := f.svc.Reply(ctx, admin, complaint.ID, "")
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	// shorter than the respond-form minimum, still accepted here
	response, err := f.svc.Reply(ctx, admin, complaint.ID, "Ok")
	require.NoError(t, err)
	assert.Equal(t, "Ok", response.Text)
}

func TestResponseCreationIsAdminOnly(t *testing.T) {
	f := newResponseFixture()
	ctx := context.Background()
	student, _, complaint := f.seed(t)

	_, err := f.svc.Respond(ctx, student, complaint.ID, "Okay")
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	_, err = f.svc.Reply(ctx, student, complaint.ID, "Okay")
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestRespondUnknownComplaint(t *testing.T) {
	f := newResponseFixture()
	ctx := context.Background()
	_, admin, _ := f.seed(t)

	_, err := f.svc.Respond(ctx, admin, "unknown-id", "Okay")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestSubmitRatingStoresOnResponse(t *testing.T) {
	f := newResponseFixture()
	ctx := context.Background()
	student, admin, complaint := f.seed(t)

	response, err := f.svc.Respond(ctx, admin, complaint.ID, "Okay")
	require.NoError(t, err)

	require.NoError(t, f.svc.SubmitRating(ctx, student, response.ID, 4))

	stored, err := f.responses.GetByID(ctx, response.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Rating)
	assert.Equal(t, 4, *stored.Rating)

	// the complaint-level rating column is untouched by this path
	storedComplaint, err := f.complaints.GetByID(ctx, complaint.ID)
	require.NoError(t, err)
	assert.Nil(t, storedComplaint.Rating)
}

func TestSubmitRatingUnknownResponse(t *testing.T) {
	f := newResponseFixture()
	ctx := context.Background()
	student, _, _ := f.seed(t)

	err := f.svc.SubmitRating(ctx, student, "unknown-id", 4)
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
	assert.Empty(t, f.responses.responses)
}

func TestSubmitRatingBounds(t *testing.T) {
	f := newResponseFixture()
	ctx := context.Background()
	student, admin, complaint := f.seed(t)

	response, err := f.svc.Respond(ctx, admin, complaint.ID, "Okay")
	require.NoError(t, err)

	assert.Equal(t, "VALIDATION_FAILED", errCode(t, f.svc.SubmitRating(ctx, student, response.ID, 0)))
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, f.svc.SubmitRating(ctx, student, response.ID, 6)))
	assert.NoError(t, f.svc.SubmitRating(ctx, student, response.ID, 5))
}
