package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	t.Run("CreateOrUpdate_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// Given: a new session
		session := entity.NewSession("123")

		// When: CreateOrUpdate is called
		err := sessionRepo.CreateOrUpdate(ctx, session)

		// Then: no error should be returned, and session is stored
		require.NoError(t, err)
	})

	t.Run("CreateOrUpdate_SetsTTL", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a new session
		session := entity.NewSession("ttl")

		// When: CreateOrUpdate is called
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// Then: the key expires within the configured TTL
		ttl, err := st.Storage.TTL(ctx, sessionKeyPrefix+session.ID).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Hour)
	})
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// Given: a stored session with a move on the board
		session := entity.NewSession("123")
		session.State.Board[0][3] = entity.Player1
		session.State.CurrentPlayer = entity.Player2
		session.State.TurnCount = 2
		session.State.Score = entity.Score{Player1: 1.5, Player2: 0.5}

		err := sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedSession, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: the retrieved session should match the saved session
		require.NoError(t, err)
		require.Equal(t, session.ID, retrievedSession.ID)
		require.Equal(t, session.State, retrievedSession.State)
		require.Equal(t, session.Status, retrievedSession.Status)
		assert.True(t, session.UpdatedAt.Equal(retrievedSession.UpdatedAt))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		nonExistentSessionID := "9999999"

		// When: GetByID is called with non-existent ID
		retrievedSession, err := sessionRepo.GetByID(ctx, nonExistentSessionID)

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrievedSession)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// Given: a stored session
		session := entity.NewSession("123")

		err := sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: DeleteByID is called with existing ID
		err = sessionRepo.DeleteByID(ctx, session.ID)

		// Then: no error should be returned and the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// When: DeleteByID is called with non-existent ID
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
