package usecase_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/asset"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/pkg/logger"
	"github.com/jhoicas/catalogo-api/pkg/validator"
)

// fakeStorage guarda los archivos en un mapa y permite forzar fallas.
type fakeStorage struct {
	mu        sync.Mutex
	files     map[string]string
	seq       int
	failUp    error
	failDel   error
	uploads   int
	deletions []string
}

func newFakeStorage() *fakeStorage { return &fakeStorage{files: map[string]string{}} }

func (s *fakeStorage) Upload(_ context.Context, r io.Reader, opts asset.UploadOptions) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads++
	if s.failUp != nil {
		return "", s.failUp
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.seq++
	ref := fmt.Sprintf("mem://%s/%d.jpg", opts.Folder, s.seq)
	s.files[ref] = string(data)
	return ref, nil
}

func (s *fakeStorage) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletions = append(s.deletions, ref)
	if s.failDel != nil {
		return s.failDel
	}
	delete(s.files, ref)
	return nil
}

func (s *fakeStorage) has(ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[ref]
	return ok
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// failingTx simula una falla de persistencia después de la subida.
type failingTx struct{ err error }

func (f failingTx) Run(context.Context, func(repository.Repos) error) error { return f.err }

type fixture struct {
	store    *memory.Store
	storage  *fakeStorage
	deps     usecase.Deps
	category *usecase.CategoryUseCase
	vendor   *usecase.VendorUseCase
	product  *usecase.ProductUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	storage := newFakeStorage()
	deps := usecase.Deps{
		Repos:     store.Repos(),
		Tx:        store,
		Assets:    asset.NewCoordinator(storage, logger.Nop(), nil),
		Validator: validator.New(),
		Limits:    dto.PageLimits{Min: 2, Max: 100},
		Log:       logger.Nop(),
	}
	return &fixture{
		store:    store,
		storage:  storage,
		deps:     deps,
		category: usecase.NewCategoryUseCase(deps),
		vendor:   usecase.NewVendorUseCase(deps, 200),
		product:  usecase.NewProductUseCase(deps, 600),
	}
}

func file(content string) *dto.FileInput {
	return &dto.FileInput{Name: "logo.png", Size: int64(len(content)), Reader: strings.NewReader(content)}
}

func intp(n int) *int { return &n }

func kindOf(t *testing.T, err error) domain.Kind {
	t.Helper()
	require.Error(t, err)
	return domain.KindOf(err)
}

func seedCatalog(t *testing.T, f *fixture) (*dto.VendorResponse, *dto.CategoryResponse) {
	t.Helper()
	ctx := context.Background()
	v, err := f.vendor.Create(ctx, dto.VendorRequest{Name: "Acme", Logo: file("logo")})
	require.NoError(t, err)
	c, err := f.category.Create(ctx, dto.CategoryRequest{Name: "Audio", Description: "Parlantes y audífonos"})
	require.NoError(t, err)
	return v, c
}
