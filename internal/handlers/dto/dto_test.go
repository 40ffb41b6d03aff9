package dto

import (
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	require.Error(t, err)
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	return errs
}

func ptr[T any](v T) *T { return &v }

func TestRegisterRequest_Validate(t *testing.T) {
	ok := RegisterRequest{Username: "alice", Password: "password123"}
	assert.NoError(t, ok.Validate())
	assert.NoError(t, RegisterRequest{Username: "alice", Password: strings.Repeat("ж", 36)}.Validate())

	tests := []struct {
		name  string
		req   RegisterRequest
		field string
	}{
		{"short username", RegisterRequest{Username: "al", Password: "password123"}, "username"},
		{"missing password", RegisterRequest{Username: "alice"}, "password"},
		{"short password", RegisterRequest{Username: "alice", Password: "short"}, "password"},
		{"long password", RegisterRequest{Username: "alice", Password: strings.Repeat("x", 73)}, "password"},
		{"password over 72 bytes", RegisterRequest{Username: "alice", Password: strings.Repeat("ж", 40)}, "password"},
		{"long firstname", RegisterRequest{Username: "alice", Password: "password123", Firstname: ptr(strings.Repeat("a", 51))}, "firstname"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, fieldErrors(t, tc.req.Validate()), tc.field)
		})
	}
}

func TestChangePasswordRequest_Validate(t *testing.T) {
	assert.NoError(t, ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password456"}.Validate())
	assert.Contains(t, fieldErrors(t, ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     strings.Repeat("ж", 40),
	}.Validate()), "newPassword")
}

func TestCommentRequest_Validate(t *testing.T) {
	assert.NoError(t, CommentRequest{Content: "nice"}.Validate())
	assert.NoError(t, CommentRequest{Content: strings.Repeat("я", 1000)}.Validate())
	assert.Contains(t, fieldErrors(t, CommentRequest{}.Validate()), "content")
	assert.Contains(t, fieldErrors(t, CommentRequest{Content: strings.Repeat("x", 1001)}.Validate()), "content")
}

func TestFriendRequestRequest_Validate(t *testing.T) {
	assert.NoError(t, FriendRequestRequest{TargetUserID: 2}.Validate())
	assert.Contains(t, fieldErrors(t, FriendRequestRequest{}.Validate()), "targetUserId")
}

func TestCreateActivityRequest_Validate(t *testing.T) {
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	valid := CreateActivityRequest{
		Type:      "RUN",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Distance:  1000,
		Locations: []LocationRequest{{Latitude: ptr(55.7), Longitude: ptr(37.6), Timestamp: start}},
	}
	require.NoError(t, valid.Validate())

	in := valid.Input()
	require.Len(t, in.Locations, 1)
	assert.Equal(t, 55.7, in.Locations[0].Latitude)

	backwards := valid
	backwards.EndTime = start.Add(-time.Minute)
	assert.Contains(t, fieldErrors(t, backwards.Validate()), "endTime")

	negative := valid
	negative.Distance = -1
	assert.Contains(t, fieldErrors(t, negative.Validate()), "distance")

	noLocations := valid
	noLocations.Locations = nil
	assert.Contains(t, fieldErrors(t, noLocations.Validate()), "locations")

	badPoint := valid
	badPoint.Locations = []LocationRequest{{Latitude: ptr(120.0), Longitude: ptr(0.0), Timestamp: start}}
	assert.Error(t, badPoint.Validate())
}

func TestUpdateActivityRequest_Patch(t *testing.T) {
	req := UpdateActivityRequest{IsPublic: ptr(true)}
	require.NoError(t, req.Validate())
	p := req.Patch()
	assert.Nil(t, p.Locations)
	require.NotNil(t, p.IsPublic)
	assert.True(t, *p.IsPublic)

	locs := []LocationRequest{}
	req = UpdateActivityRequest{Locations: &locs}
	require.NoError(t, req.Validate())
	p = req.Patch()
	require.NotNil(t, p.Locations)
	assert.Empty(t, *p.Locations)

	bad := []LocationRequest{{Latitude: ptr(1.0)}}
	req = UpdateActivityRequest{Locations: &bad}
	assert.Contains(t, fieldErrors(t, req.Validate()), "locations[0]")
}

func TestActivityListQuery(t *testing.T) {
	q := ActivityListQuery{StartDate: "2024-05-01", EndDate: "2024-05-31T23:59:59Z"}
	require.NoError(t, q.Validate())

	sq := q.Query()
	require.NotNil(t, sq.StartDate)
	require.NotNil(t, sq.EndDate)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *sq.StartDate)

	assert.Contains(t, fieldErrors(t, ActivityListQuery{StartDate: "yesterday"}.Validate()), "startDate")
	assert.Contains(t, fieldErrors(t, ActivityListQuery{Limit: -1}.Validate()), "limit")
}

func TestAvatarRequests_Validate(t *testing.T) {
	assert.NoError(t, AvatarUploadRequest{Ext: "png", ContentType: "image/png"}.Validate())
	assert.Contains(t, fieldErrors(t, AvatarUploadRequest{Ext: "../x", ContentType: "image/png"}.Validate()), "ext")
	assert.Contains(t, fieldErrors(t, AvatarUploadRequest{Ext: "png", ContentType: "text/html"}.Validate()), "contentType")
	assert.Contains(t, fieldErrors(t, AvatarConfirmRequest{ContentType: "image/png"}.Validate()), "key")
}
