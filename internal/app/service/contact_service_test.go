package service

import (
	"context"
	"testing"

	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/learnhub/learnhub-backend/internal/app/repository"
	"github.com/learnhub/learnhub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactService_Submit(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	svc := NewContactService(repository.NewContactRepository(testDB))

	tests := []struct {
		name    string
		input   ContactInput
		wantErr error
	}{
		{name: "Complete", input: ContactInput{Name: "Ada", Email: "ada@example.com", Website: "ada.dev", Message: "Hi"}},
		{name: "Website optional", input: ContactInput{Name: "Bob", Email: "bob@example.com", Message: "Hi"}},
		{name: "Missing name", input: ContactInput{Email: "x@example.com", Message: "Hi"}, wantErr: ErrFieldsRequired},
		{name: "Blank message", input: ContactInput{Name: "X", Email: "x@example.com", Message: "   "}, wantErr: ErrFieldsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := svc.Submit(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, msg)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, msg.ID)
		})
	}

	var count int64
	require.NoError(t, testDB.Model(&model.ContactMessage{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
