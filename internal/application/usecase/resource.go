package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/application/asset"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/query"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
	"github.com/jhoicas/catalogo-api/pkg/validator"
)

// Entity lo que Resource necesita de una entidad del catálogo.
type Entity interface {
	query.Record
	Key() int64
	UniqueName() string
	Asset() string
}

// Deps dependencias comunes de los casos de uso del catálogo.
type Deps struct {
	Repos     repository.Repos
	Tx        repository.TxRunner
	Assets    *asset.Coordinator
	Validator *validator.Validator
	Limits    dto.PageLimits
	Log       *logger.Logger
}

// Resource orquesta el CRUD de una entidad: unicidad de nombre antes de
// persistir, subida de la imagen fuera de la transacción y limpieza best-effort
// de imágenes reemplazadas o huérfanas. Es la misma disciplina para todas las
// entidades; cada caso de uso concreto solo aporta validación y mapeo.
type Resource[T Entity] struct {
	schema   query.Schema[T]
	repo     repository.Store[T]
	pick     func(repository.Repos) repository.Store[T]
	tx       repository.TxRunner
	assets   *asset.Coordinator
	validate *validator.Validator
	limits   dto.PageLimits
	log      *logger.Logger

	// upload destino de la imagen; attach la asigna a la entidad. Nil si la entidad no tiene imagen.
	upload *asset.UploadOptions
	attach func(T, string)
	// guard se evalúa dentro de la transacción de borrado, antes de borrar.
	guard func(ctx context.Context, repos repository.Repos, e T) error
}

func newResource[T Entity](d Deps, schema query.Schema[T], pick func(repository.Repos) repository.Store[T]) *Resource[T] {
	return &Resource[T]{
		schema:   schema,
		repo:     pick(d.Repos),
		pick:     pick,
		tx:       d.Tx,
		assets:   d.Assets,
		validate: d.Validator,
		limits:   d.Limits,
		log:      d.Log.Named(schema.Resource),
	}
}

func (r *Resource[T]) withAsset(opts asset.UploadOptions, attach func(T, string)) *Resource[T] {
	r.upload, r.attach = &opts, attach
	return r
}

func (r *Resource[T]) withDeleteGuard(guard func(context.Context, repository.Repos, T) error) *Resource[T] {
	r.guard = guard
	return r
}

// Get devuelve la entidad o un error NotFound.
func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	e, err := r.repo.GetByID(ctx, id)
	if err != nil {
		var zero T
		return zero, r.fail("get", id, "", err)
	}
	return e, nil
}

// List aplica búsqueda, orden y paginación. extra se combina (AND) con la búsqueda.
func (r *Resource[T]) List(ctx context.Context, params dto.PageParams, extra query.Predicate[T]) (*query.Result[T], error) {
	page, errs := params.Page(r.limits, r.validate)
	if errs != nil {
		return nil, domain.NewValidation("Validation Error", errs)
	}
	q := r.schema.Build(params.Search, params.Sort).Filter(extra)
	res, err := query.Execute(ctx, r.repo, q, page)
	if err != nil {
		return nil, r.fail("list", 0, "", err)
	}
	return res, nil
}

// Create persiste e. Si file no es nil se sube primero; si la persistencia falla
// el archivo recién subido se descarta.
func (r *Resource[T]) Create(ctx context.Context, e T, file *dto.FileInput) (T, error) {
	var zero T
	name := e.UniqueName()
	if err := r.ensureUnique(ctx, r.repo, name, 0); err != nil {
		return zero, err
	}

	ref, err := r.uploadFile(ctx, file)
	if err != nil {
		return zero, err
	}
	if ref != "" {
		r.attach(e, ref)
	}

	err = r.tx.Run(ctx, func(repos repository.Repos) error {
		store := r.pick(repos)
		if err := r.ensureUnique(ctx, store, name, 0); err != nil {
			return err
		}
		return store.Create(ctx, e)
	})
	if err != nil {
		r.assets.Discard(ctx, ref)
		return zero, r.fail("create", 0, name, err)
	}
	r.log.Info().Int64("id", e.Key()).Str("name", name).Msg("creado")
	return e, nil
}

// Update aplica change a la fila id. Con file, la imagen nueva se sube antes de
// persistir y la anterior se borra solo después de confirmar la transacción.
func (r *Resource[T]) Update(ctx context.Context, id int64, change func(T), file *dto.FileInput) (T, error) {
	var zero T
	current, err := r.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	oldName, oldRef := current.UniqueName(), current.Asset()
	change(current)
	newName := current.UniqueName()
	renamed := newName != oldName
	if renamed {
		if err := r.ensureUnique(ctx, r.repo, newName, id); err != nil {
			return zero, err
		}
	}

	newRef, err := r.uploadFile(ctx, file)
	if err != nil {
		return zero, err
	}

	var saved T
	err = r.tx.Run(ctx, func(repos repository.Repos) error {
		store := r.pick(repos)
		fresh, err := store.GetByID(ctx, id)
		if err != nil {
			return err
		}
		oldRef = fresh.Asset()
		change(fresh)
		if newRef != "" {
			r.attach(fresh, newRef)
		}
		if fresh.UniqueName() != oldName || renamed {
			if err := r.ensureUnique(ctx, store, fresh.UniqueName(), id); err != nil {
				return err
			}
		}
		if err := store.Update(ctx, fresh); err != nil {
			return err
		}
		saved = fresh
		return nil
	})
	if err != nil {
		r.assets.Discard(ctx, newRef)
		return zero, r.fail("update", id, newName, err)
	}

	if newRef != "" && oldRef != newRef {
		r.assets.Delete(ctx, oldRef)
	}
	r.log.Info().Int64("id", id).Str("name", saved.UniqueName()).Msg("actualizado")
	return saved, nil
}

// Delete borra la fila id y luego, best-effort, su imagen.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	var ref string
	err := r.tx.Run(ctx, func(repos repository.Repos) error {
		store := r.pick(repos)
		e, err := store.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if r.guard != nil {
			if err := r.guard(ctx, repos, e); err != nil {
				return err
			}
		}
		ref = e.Asset()
		return store.Delete(ctx, id)
	})
	if err != nil {
		return r.fail("delete", id, "", err)
	}
	if r.assets != nil {
		r.assets.Delete(ctx, ref)
	}
	r.log.Info().Int64("id", id).Msg("eliminado")
	return nil
}

// ensureUnique devuelve un error Duplicate si name ya está tomado por otra fila.
func (r *Resource[T]) ensureUnique(ctx context.Context, store repository.Store[T], name string, excludeID int64) error {
	taken, err := store.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return r.fail("exists", excludeID, name, err)
	}
	if taken {
		return domain.NewDuplicate(r.schema.Resource, "name", name)
	}
	return nil
}

func (r *Resource[T]) uploadFile(ctx context.Context, file *dto.FileInput) (string, error) {
	if file == nil || r.upload == nil {
		return "", nil
	}
	return r.assets.Upload(ctx, file.Reader, *r.upload)
}

// fail traduce errores de repositorio al error tipado del dominio. Los errores ya
// tipados pasan sin cambios; los no esperados se registran y se ocultan al cliente.
func (r *Resource[T]) fail(op string, id int64, name string, err error) error {
	if de, ok := domain.AsError(err); ok {
		return de
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.NewNotFound(r.schema.Resource, id)
	case errors.Is(err, domain.ErrDuplicate):
		return domain.NewDuplicate(r.schema.Resource, "name", name)
	case errors.Is(err, domain.ErrConflict):
		return domain.NewValidation(fmt.Sprintf("%s violates a reference to another resource!", r.schema.Resource), nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		r.log.Warn().Err(err).Str("op", op).Int64("id", id).Msg("operación cancelada")
		return domain.NewInternal(err)
	default:
		r.log.Error().Err(err).Str("op", op).Int64("id", id).Msg("falla de persistencia")
		return domain.NewInternal(err)
	}
}
