package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/medianexus/internal/model"
)

func TestRegisterAndVerify(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	user, err := repos.User.Register(ctx, "alice", "correct horse", "alice@example.com")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, "alice", user.Nickname)
	// 库里只存哈希
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	got, err := repos.User.Verify(ctx, "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	require.NotNil(t, got.LastLoginAt)

	stored, err := repos.User.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestVerifyInvalidCredentials(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.User.Register(ctx, "alice", "correct horse", "alice@example.com")
	require.NoError(t, err)

	// 密码错误和用户不存在表现一致
	_, err = repos.User.Verify(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = repos.User.Verify(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.User.Register(ctx, "alice", "pass-one", "alice@example.com")
	require.NoError(t, err)

	_, err = repos.User.Register(ctx, "bob", "pass-two", "alice@example.com")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = repos.User.Register(ctx, "alice", "pass-three", "alice2@example.com")
	assert.ErrorIs(t, err, ErrLoginTaken)
}

func TestRegisterUniqueConstraintBackstop(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.User.Register(ctx, "alice", "pass-one", "alice@example.com")
	require.NoError(t, err)

	// 绕过快速查重直接插入，唯一约束必须兜底
	err = repos.DB.Create(&model.User{
		Username: "alice",
		Email:    "alice3@example.com",
	}).Error
	assert.ErrorIs(t, wrapErr(err), ErrConflict)
}

func TestUpdateInfoWrongPasswordKeepsHash(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	user, err := repos.User.Register(ctx, "alice", "old password", "alice@example.com")
	require.NoError(t, err)
	oldHash := user.PasswordHash

	user.Nickname = "Alice"
	err = repos.User.UpdateInfo(ctx, user, "not the password", "new password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	stored, err := repos.User.FindByID(ctx, user.ID)
	require.NoError(t, err)
	// 哈希没有变，昵称也没有变（整个更新回滚）
	assert.Equal(t, oldHash, stored.PasswordHash)
	assert.Equal(t, "alice", stored.Nickname)
}

func TestUpdateInfoChangesPasswordAndProfile(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	user, err := repos.User.Register(ctx, "alice", "old password", "alice@example.com")
	require.NoError(t, err)

	user.Nickname = "Alice"
	user.Description = "читаю все підряд"
	require.NoError(t, repos.User.UpdateInfo(ctx, user, "old password", "new password"))

	stored, err := repos.User.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.Nickname)
	assert.Equal(t, "читаю все підряд", stored.Description)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new password")))

	_, err = repos.User.Verify(ctx, "alice", "new password")
	assert.NoError(t, err)
}

func TestUpdateInfoEmailTaken(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.User.Register(ctx, "alice", "pass-one", "alice@example.com")
	require.NoError(t, err)
	bob, err := repos.User.Register(ctx, "bob", "pass-two", "bob@example.com")
	require.NoError(t, err)

	// 想改成别人的邮箱：明确失败，而不是悄悄保留旧值
	bob.Email = "alice@example.com"
	err = repos.User.UpdateInfo(ctx, bob, "", "")
	assert.ErrorIs(t, err, ErrEmailTaken)

	stored, err := repos.User.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", stored.Email)
}

func TestUpdateRoleAndBan(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	user, err := repos.User.Register(ctx, "alice", "pass-one", "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, repos.User.UpdateRole(ctx, user.ID, model.RoleModerator))
	require.NoError(t, repos.User.SetBan(ctx, user.ID, true, nil))

	stored, err := repos.User.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleModerator, stored.Role)
	assert.True(t, stored.IsBanned)
}
