package service

import (
	"context"
	"testing"

	"backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An admin deleting their own account is a bad request, not a conflict with
// other state.
func TestDeleteProfileRejectsSelfDelete(t *testing.T) {
	svc := NewProfileService(nil, nil)
	adminID := uuid.New()

	err := svc.Delete(context.Background(), adminID, adminID)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
