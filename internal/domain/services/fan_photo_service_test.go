package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuca-backend/internal/domain/models"
)

func TestSubmitPhotoAlwaysPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewFanPhotoService(db, newTestConfig())
	ctx := context.Background()

	// 客户端伪造的状态与审核字段会被覆盖
	photo := &models.FanPhoto{
		Name:       "Maria",
		Caption:    "CUCA na festa",
		ImageData:  "ZmFrZS1pbWFnZQ==",
		Status:     models.PhotoStatusApproved,
		ApprovedBy: "hacker",
	}
	require.NoError(t, svc.SubmitPhoto(ctx, photo))
	assert.Equal(t, models.PhotoStatusPending, photo.Status)
	assert.Nil(t, photo.ApprovedAt)
	assert.Empty(t, photo.ApprovedBy)
}

func TestModeratePhotoApprove(t *testing.T) {
	db := newTestDB(t)
	svc := NewFanPhotoService(db, newTestConfig())
	ctx := context.Background()

	photo := &models.FanPhoto{Name: "Maria", Caption: "CUCA na festa", ImageData: "ZmFrZQ=="}
	require.NoError(t, svc.SubmitPhoto(ctx, photo))

	approved, err := svc.ModeratePhoto(ctx, photo.ID, models.PhotoStatusApproved, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.PhotoStatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, "admin", approved.ApprovedBy)

	// 通过审核后出现在公开列表中
	photos, total, err := svc.GetApprovedPhotos(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, photos, 1)
}

func TestModeratePhotoReject(t *testing.T) {
	db := newTestDB(t)
	svc := NewFanPhotoService(db, newTestConfig())
	ctx := context.Background()

	photo := &models.FanPhoto{Name: "Maria", Caption: "CUCA na festa", ImageData: "ZmFrZQ=="}
	require.NoError(t, svc.SubmitPhoto(ctx, photo))

	rejected, err := svc.ModeratePhoto(ctx, photo.ID, models.PhotoStatusRejected, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.PhotoStatusRejected, rejected.Status)
	assert.Nil(t, rejected.ApprovedAt)

	_, total, err := svc.GetApprovedPhotos(ctx, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestModeratePhotoInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewFanPhotoService(db, newTestConfig())

	_, err := svc.ModeratePhoto(context.Background(), 1, "framed", "admin")
	assert.ErrorIs(t, err, ErrInvalidPhotoStatus)
}
