package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo puerto UserRepository sobre Store. El email se compara sin mayúsculas.
type UserRepo struct{ s *Store }

// Users devuelve el repositorio de usuarios del store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) Save(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := strings.ToLower(u.Email)
	now := r.s.now()
	if old, ok := r.s.users[key]; ok {
		u.ID, u.CreatedAt = old.ID, old.CreatedAt
	} else {
		r.s.userSeq++
		u.ID, u.CreatedAt = r.s.userSeq, now
	}
	u.UpdatedAt = now
	r.s.users[key] = *u
	return nil
}
