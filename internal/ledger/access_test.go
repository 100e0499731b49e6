package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finance-ledger/internal/models"
)

func TestActorCanAccess(t *testing.T) {
	owner := Actor{ID: 1}
	stranger := Actor{ID: 2}
	admin := Actor{ID: 3, Admin: true}

	assert.True(t, owner.CanAccess(1))
	assert.False(t, stranger.CanAccess(1))
	assert.True(t, admin.CanAccess(1))
}

func TestActorCategoryAccess(t *testing.T) {
	ownerID := uint(1)
	private := &models.Category{Name: "Mine", Type: models.CategoryExpenditure, UserID: &ownerID}
	global := &models.Category{Name: "Shared", Type: models.CategoryIncome}

	owner := Actor{ID: 1}
	stranger := Actor{ID: 2}
	admin := Actor{ID: 3, Admin: true}

	// private: owner or admin, read and write alike
	assert.True(t, owner.CanReadCategory(private))
	assert.True(t, owner.CanWriteCategory(private))
	assert.False(t, stranger.CanReadCategory(private))
	assert.False(t, stranger.CanWriteCategory(private))
	assert.True(t, admin.CanWriteCategory(private))

	// global: everyone reads, only admins write
	assert.True(t, stranger.CanReadCategory(global))
	assert.False(t, stranger.CanWriteCategory(global))
	assert.False(t, owner.CanWriteCategory(global))
	assert.True(t, admin.CanWriteCategory(global))
}
