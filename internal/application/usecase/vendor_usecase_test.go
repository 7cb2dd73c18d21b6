package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
)

func TestVendor_EscenarioAcme(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.vendor.Create(ctx, dto.VendorRequest{Name: "Acme", Logo: file("logo-1")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "mem://vendors/1.jpg", created.Logo)
	assert.True(t, f.storage.has(created.Logo))

	got, err := f.vendor.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	_, err = f.vendor.Create(ctx, dto.VendorRequest{Name: "Acme", Logo: file("logo-2")})
	assert.Equal(t, domain.KindDuplicate, kindOf(t, err))
	assert.EqualError(t, err, "Vendor with name=[Acme] has already existed!")
	assert.Equal(t, 1, f.storage.uploads, "la verificación de unicidad va antes de subir")

	updated, err := f.vendor.Update(ctx, created.ID, dto.VendorRequest{Name: "Acme", Logo: file("logo-3")})
	require.NoError(t, err)
	assert.NotEqual(t, created.Logo, updated.Logo)
	assert.False(t, f.storage.has(created.Logo), "el logo anterior se borra")
	assert.True(t, f.storage.has(updated.Logo))

	require.NoError(t, f.vendor.Delete(ctx, created.ID))
	_, err = f.vendor.GetByID(ctx, created.ID)
	assert.Equal(t, domain.KindNotFound, kindOf(t, err))
	assert.EqualError(t, err, "Vendor with id=[1] not found!")
	assert.Zero(t, f.storage.count(), "el logo se borra con el proveedor")
}

func TestVendor_ListaPrimeraPaginaDeCinco(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := range 5 {
		_, err := f.vendor.Create(ctx, dto.VendorRequest{Name: fmt.Sprintf("v%d", i), Logo: file("x")})
		require.NoError(t, err)
	}

	page, err := f.vendor.List(ctx, dto.PageParams{PageNum: intp(1), PageSize: intp(2)})
	require.NoError(t, err)

	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "v0", page.Items[0].Name)
}

func TestVendor_ListaVaciaDevuelveSliceVacio(t *testing.T) {
	f := newFixture(t)

	page, err := f.vendor.List(context.Background(), dto.PageParams{})
	require.NoError(t, err)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalPages)
	assert.Equal(t, 2, page.PageSize, "el tamaño por defecto es el mínimo")
}

func TestVendor_ListaParametrosFueraDeRango(t *testing.T) {
	f := newFixture(t)

	_, err := f.vendor.List(context.Background(), dto.PageParams{PageNum: intp(0), PageSize: intp(101)})

	require.Equal(t, domain.KindValidation, kindOf(t, err))
	de, _ := domain.AsError(err)
	assert.Contains(t, de.Fields, "pageNum")
	assert.Contains(t, de.Fields, "pageSize")
}

func TestVendor_ListaPaginaEnormeDevuelvePaginaVacia(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := range 3 {
		_, err := f.vendor.Create(ctx, dto.VendorRequest{Name: fmt.Sprintf("v%d", i), Logo: file("x")})
		require.NoError(t, err)
	}

	page, err := f.vendor.List(ctx, dto.PageParams{PageNum: intp(math.MaxInt64/2 + 2), PageSize: intp(2)})
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
}

func TestVendor_CrearSinLogo(t *testing.T) {
	f := newFixture(t)

	_, err := f.vendor.Create(context.Background(), dto.VendorRequest{Name: "  "})

	require.Equal(t, domain.KindValidation, kindOf(t, err))
	de, _ := domain.AsError(err)
	assert.Equal(t, "must not be blank", de.Fields["name"])
	assert.Contains(t, de.Fields, "logo")
	assert.Zero(t, f.storage.uploads)
}

func TestVendor_RenombrarANombreTomado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme, err := f.vendor.Create(ctx, dto.VendorRequest{Name: "Acme", Logo: file("a")})
	require.NoError(t, err)
	_, err = f.vendor.Create(ctx, dto.VendorRequest{Name: "Globex", Logo: file("g")})
	require.NoError(t, err)

	_, err = f.vendor.Update(ctx, acme.ID, dto.VendorRequest{Name: "Globex", Logo: file("n")})
	assert.Equal(t, domain.KindDuplicate, kindOf(t, err))

	got, err := f.vendor.GetByID(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, acme.Logo, got.Logo)
	assert.Equal(t, 2, f.storage.uploads, "no se sube nada si el nombre está tomado")
}

func TestVendor_ActualizarConservandoNombreNoEsDuplicado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme, err := f.vendor.Create(ctx, dto.VendorRequest{Name: "Acme", Logo: file("a")})
	require.NoError(t, err)

	updated, err := f.vendor.Update(ctx, acme.ID, dto.VendorRequest{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, acme.Logo, updated.Logo, "sin archivo se conserva el logo")
	assert.True(t, f.storage.has(acme.Logo))
}

func TestVendor_FallaDeSubidaNoTocaLaFila(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme, err := f.vendor.Create(ctx, dto.VendorRequest{Name: "Acme", Logo: file("a")})
	require.NoError(t, err)
	f.storage.failUp = errors.New("proveedor caído")

	_, err = f.vendor.Update(ctx, acme.ID, dto.VendorRequest{Name: "Acme Corp", Logo: file("b")})
	assert.Equal(t, domain.KindAssetUpload, kindOf(t, err))
	assert.ErrorIs(t, err, domain.ErrAssetUpload)

	got, err := f.vendor.GetByID(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, acme.Logo, got.Logo)
	assert.True(t, f.storage.has(acme.Logo))
	assert.Empty(t, f.storage.deletions)
}

func TestVendor_FallaAlBorrarLogoAnteriorNoFallaElUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acme, err := f.vendor.Create(ctx, dto.VendorRequest{Name: "Acme", Logo: file("a")})
	require.NoError(t, err)
	f.storage.failDel = errors.New("sin permisos")

	updated, err := f.vendor.Update(ctx, acme.ID, dto.VendorRequest{Name: "Acme", Logo: file("b")})
	require.NoError(t, err)

	assert.NotEqual(t, acme.Logo, updated.Logo)
	assert.Equal(t, []string{acme.Logo}, f.storage.deletions)
	got, err := f.vendor.GetByID(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Logo, got.Logo)
}

func TestVendor_BorrarInexistente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.vendor.Create(ctx, dto.VendorRequest{Name: "Acme", Logo: file("a")})
	require.NoError(t, err)

	err = f.vendor.Delete(ctx, 42)
	assert.Equal(t, domain.KindNotFound, kindOf(t, err))

	page, err := f.vendor.List(ctx, dto.PageParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalItems)
	assert.Empty(t, f.storage.deletions)
}

func TestVendor_FallaDePersistenciaDescartaLaSubida(t *testing.T) {
	f := newFixture(t)
	deps := f.deps
	deps.Tx = failingTx{err: errors.New("conexión perdida")}
	uc := usecase.NewVendorUseCase(deps, 200)

	_, err := uc.Create(context.Background(), dto.VendorRequest{Name: "Acme", Logo: file("a")})

	assert.Equal(t, domain.KindInternal, kindOf(t, err))
	assert.EqualError(t, err, "Internal Server Error: conexión perdida")
	assert.Equal(t, 1, f.storage.uploads)
	assert.Len(t, f.storage.deletions, 1)
	assert.Zero(t, f.storage.count(), "el archivo huérfano se descarta")
}

func TestVendor_BorrarConProductosSeRechaza(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	v, c := seedCatalog(t, f)
	_, err := f.product.Create(ctx, dto.ProductRequest{Name: "Parlante", Price: "10", CategoryID: c.ID, VendorID: v.ID})
	require.NoError(t, err)

	err = f.vendor.Delete(ctx, v.ID)
	assert.Equal(t, domain.KindValidation, kindOf(t, err))
	assert.True(t, f.storage.has(v.Logo), "el logo sigue si el borrado se rechaza")
}

// lateVendors simula perder la carrera: la verificación previa no ve el nombre y
// el índice único del store rechaza la escritura.
type lateVendors struct{ repository.VendorRepository }

func (lateVendors) ExistsByName(context.Context, string, int64) (bool, error) { return false, nil }

func (lateVendors) Create(context.Context, *entity.Vendor) error {
	return fmt.Errorf("insert vendors: %w", domain.ErrDuplicate)
}

func (lateVendors) Update(context.Context, *entity.Vendor) error {
	return fmt.Errorf("update vendors: %w", domain.ErrDuplicate)
}

type lateTx struct{ store *memory.Store }

func (l lateTx) Run(ctx context.Context, fn func(repository.Repos) error) error {
	return l.store.Run(ctx, func(repos repository.Repos) error {
		repos.Vendors = lateVendors{repos.Vendors}
		return fn(repos)
	})
}

func lateVendorUseCase(f *fixture) *usecase.VendorUseCase {
	deps := f.deps
	deps.Repos.Vendors = lateVendors{deps.Repos.Vendors}
	deps.Tx = lateTx{store: f.store}
	return usecase.NewVendorUseCase(deps, 200)
}

func TestVendor_CrearPerdiendoCarreraEsDuplicado(t *testing.T) {
	f := newFixture(t)
	uc := lateVendorUseCase(f)

	_, err := uc.Create(context.Background(), dto.VendorRequest{Name: "Acme", Logo: file("logo")})

	assert.Equal(t, domain.KindDuplicate, kindOf(t, err))
	assert.EqualError(t, err, "Vendor with name=[Acme] has already existed!")
	assert.Equal(t, 1, f.storage.uploads)
	assert.Len(t, f.storage.deletions, 1, "la subida se descarta")
	assert.Zero(t, f.storage.count())
}

func TestVendor_ActualizarPerdiendoCarreraEsDuplicado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.vendor.Create(ctx, dto.VendorRequest{Name: "Acme", Logo: file("logo-1")})
	require.NoError(t, err)
	uc := lateVendorUseCase(f)

	_, err = uc.Update(ctx, created.ID, dto.VendorRequest{Name: "Globex", Logo: file("logo-2")})

	assert.Equal(t, domain.KindDuplicate, kindOf(t, err))
	assert.EqualError(t, err, "Vendor with name=[Globex] has already existed!")
	assert.Equal(t, 1, f.storage.count(), "el logo nuevo se descarta")
	assert.True(t, f.storage.has(created.Logo), "el logo anterior sigue")

	got, err := f.vendor.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}
