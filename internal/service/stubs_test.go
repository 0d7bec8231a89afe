package service_test

import (
	"context"
	"time"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"
	"clinicavet/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Every DB() returns nil, which makes the
// services run their transactional closures directly (see runTx).

// ── productos ────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo(productos ...*model.Producto) *stubProductoRepo {
	r := &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
	for _, p := range productos {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.productos[p.ID] = p
	}
	return r
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListBajoStock(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.StockActual <= p.StockMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *stubProductoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockActual += delta
	return nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) DescontarStockCondTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int64, error) {
	p, ok := r.productos[id]
	if !ok || p.StockActual < cantidad {
		return 0, nil
	}
	p.StockActual -= cantidad
	return 1, nil
}

func (r *stubProductoRepo) DevolverStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int64, error) {
	p, ok := r.productos[id]
	if !ok {
		return 0, nil
	}
	p.StockActual += cantidad
	return 1, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── servicios ────────────────────────────────────────────────────────────────

type stubServicioRepo struct {
	servicios map[uuid.UUID]*model.Servicio
}

func newStubServicioRepo(servicios ...*model.Servicio) *stubServicioRepo {
	r := &stubServicioRepo{servicios: make(map[uuid.UUID]*model.Servicio)}
	for _, s := range servicios {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.servicios[s.ID] = s
	}
	return r
}

func (r *stubServicioRepo) Create(_ context.Context, s *model.Servicio) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.servicios[s.ID] = s
	return nil
}

func (r *stubServicioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Servicio, error) {
	s, ok := r.servicios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubServicioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Servicio, error) {
	var out []model.Servicio
	for _, s := range r.servicios {
		if s.Activo || incluirInactivos {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubServicioRepo) Update(_ context.Context, s *model.Servicio) error {
	r.servicios[s.ID] = s
	return nil
}

func (r *stubServicioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if s, ok := r.servicios[id]; ok {
		s.Activo = false
	}
	return nil
}

var _ repository.ServicioRepository = (*stubServicioRepo)(nil)

// ── propietarios / mascotas ──────────────────────────────────────────────────

type stubPropietarioRepo struct {
	propietarios map[uuid.UUID]*model.Propietario
}

func newStubPropietarioRepo(propietarios ...*model.Propietario) *stubPropietarioRepo {
	r := &stubPropietarioRepo{propietarios: make(map[uuid.UUID]*model.Propietario)}
	for _, p := range propietarios {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.propietarios[p.ID] = p
	}
	return r
}

func (r *stubPropietarioRepo) Create(_ context.Context, p *model.Propietario) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.propietarios[p.ID] = p
	return nil
}

func (r *stubPropietarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Propietario, error) {
	p, ok := r.propietarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPropietarioRepo) List(_ context.Context, _ dto.PropietarioFilter) ([]model.Propietario, int64, error) {
	out := make([]model.Propietario, 0, len(r.propietarios))
	for _, p := range r.propietarios {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPropietarioRepo) Update(_ context.Context, p *model.Propietario) error {
	r.propietarios[p.ID] = p
	return nil
}

func (r *stubPropietarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.propietarios[id]; ok {
		p.Activo = false
	}
	return nil
}

var _ repository.PropietarioRepository = (*stubPropietarioRepo)(nil)

type stubMascotaRepo struct {
	mascotas map[uuid.UUID]*model.Mascota
}

func newStubMascotaRepo(mascotas ...*model.Mascota) *stubMascotaRepo {
	r := &stubMascotaRepo{mascotas: make(map[uuid.UUID]*model.Mascota)}
	for _, m := range mascotas {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		r.mascotas[m.ID] = m
	}
	return r
}

func (r *stubMascotaRepo) Create(_ context.Context, m *model.Mascota) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.mascotas[m.ID] = m
	return nil
}

func (r *stubMascotaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Mascota, error) {
	m, ok := r.mascotas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMascotaRepo) List(_ context.Context, _ dto.MascotaFilter) ([]model.Mascota, int64, error) {
	out := make([]model.Mascota, 0, len(r.mascotas))
	for _, m := range r.mascotas {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMascotaRepo) Update(_ context.Context, m *model.Mascota) error {
	r.mascotas[m.ID] = m
	return nil
}

func (r *stubMascotaRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if m, ok := r.mascotas[id]; ok {
		m.Activo = false
	}
	return nil
}

var _ repository.MascotaRepository = (*stubMascotaRepo)(nil)

// ── CAI ──────────────────────────────────────────────────────────────────────

type stubCAIRepo struct {
	cais map[uuid.UUID]*model.CAI
	// simularCarrera makes the next AvanzarCorrelativoTx miss its guard, as
	// if a concurrent creation had already taken the number.
	simularCarrera bool
}

func newStubCAIRepo(cais ...*model.CAI) *stubCAIRepo {
	r := &stubCAIRepo{cais: make(map[uuid.UUID]*model.CAI)}
	for _, c := range cais {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.cais[c.ID] = c
	}
	return r
}

func (r *stubCAIRepo) Create(_ context.Context, c *model.CAI) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for _, existente := range r.cais {
		if existente.Codigo == c.Codigo {
			return gorm.ErrDuplicatedKey
		}
	}
	r.cais[c.ID] = c
	return nil
}

func (r *stubCAIRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CAI, error) {
	c, ok := r.cais[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCAIRepo) FindActivo(_ context.Context) (*model.CAI, error) {
	for _, c := range r.cais {
		if c.Activo {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCAIRepo) FindActivoTx(_ *gorm.DB) (*model.CAI, error) {
	return r.FindActivo(context.Background())
}

func (r *stubCAIRepo) List(_ context.Context) ([]model.CAI, error) {
	out := make([]model.CAI, 0, len(r.cais))
	for _, c := range r.cais {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCAIRepo) Activar(_ context.Context, id uuid.UUID) error {
	if _, ok := r.cais[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, c := range r.cais {
		c.Activo = c.ID == id
	}
	return nil
}

func (r *stubCAIRepo) AvanzarCorrelativoTx(_ *gorm.DB, id uuid.UUID, esperado int64) (int64, error) {
	c, ok := r.cais[id]
	if !ok {
		return 0, nil
	}
	if r.simularCarrera {
		r.simularCarrera = false
		c.CorrelativoActual = esperado + 1
	}
	if c.CorrelativoActual != esperado {
		return 0, nil
	}
	c.CorrelativoActual++
	return 1, nil
}

func (r *stubCAIRepo) DB() *gorm.DB { return nil }

var _ repository.CAIRepository = (*stubCAIRepo)(nil)

// ── facturas ─────────────────────────────────────────────────────────────────

type stubFacturaRepo struct {
	facturas map[uuid.UUID]*model.Factura
}

func newStubFacturaRepo() *stubFacturaRepo {
	return &stubFacturaRepo{facturas: make(map[uuid.UUID]*model.Factura)}
}

func (r *stubFacturaRepo) CreateTx(_ *gorm.DB, f *model.Factura) error {
	for _, existente := range r.facturas {
		if existente.Numero == f.Numero {
			return gorm.ErrDuplicatedKey
		}
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now()
	r.facturas[f.ID] = f
	return nil
}

func (r *stubFacturaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Factura, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *f
	return &copia, nil
}

func (r *stubFacturaRepo) List(_ context.Context, _ dto.FacturaFilter) ([]model.Factura, int64, error) {
	out := make([]model.Factura, 0, len(r.facturas))
	for _, f := range r.facturas {
		out = append(out, *f)
	}
	return out, int64(len(out)), nil
}

func (r *stubFacturaRepo) UpdateTx(_ *gorm.DB, f *model.Factura) error {
	if _, ok := r.facturas[f.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.facturas[f.ID] = f
	return nil
}

func (r *stubFacturaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.facturas[id]; !ok {
		return 0, nil
	}
	delete(r.facturas, id)
	return 1, nil
}

func (r *stubFacturaRepo) DB() *gorm.DB { return nil }

var _ repository.FacturaRepository = (*stubFacturaRepo)(nil)

// ── movimientos de stock ─────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.MovimientoStock
}

func newStubMovimientoRepo() *stubMovimientoRepo { return &stubMovimientoRepo{} }

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) ListByProducto(_ context.Context, productoID uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubMovimientoRepo) ListRecientes(_ context.Context, limit int) ([]model.MovimientoStock, error) {
	out := r.movimientos
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// porTipo cuenta los movimientos registrados de un tipo dado.
func (r *stubMovimientoRepo) porTipo(tipo string) int {
	n := 0
	for _, m := range r.movimientos {
		if m.Tipo == tipo {
			n++
		}
	}
	return n
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── citas / usuarios ─────────────────────────────────────────────────────────

type stubCitaRepo struct {
	citas map[uuid.UUID]*model.Cita
}

func newStubCitaRepo() *stubCitaRepo {
	return &stubCitaRepo{citas: make(map[uuid.UUID]*model.Cita)}
}

func (r *stubCitaRepo) Create(_ context.Context, c *model.Cita) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.citas[c.ID] = c
	return nil
}

func (r *stubCitaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cita, error) {
	c, ok := r.citas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCitaRepo) ExisteSolapada(_ context.Context, veterinarioID uuid.UUID, fecha time.Time, excluir *uuid.UUID) (bool, error) {
	for _, c := range r.citas {
		if excluir != nil && c.ID == *excluir {
			continue
		}
		if c.VeterinarioID == veterinarioID && c.Fecha.Equal(fecha) && c.Estado != "cancelada" {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCitaRepo) List(_ context.Context, _ dto.CitaFilter) ([]model.Cita, int64, error) {
	out := make([]model.Cita, 0, len(r.citas))
	for _, c := range r.citas {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCitaRepo) Update(_ context.Context, c *model.Cita) error {
	if _, ok := r.citas[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.citas[c.ID] = c
	return nil
}

var _ repository.CitaRepository = (*stubCitaRepo)(nil)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo(usuarios ...*model.Usuario) *stubUsuarioRepo {
	r := &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
	for _, u := range usuarios {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		r.usuarios[u.ID] = u
	}
	return r
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = activo
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── helpers ──────────────────────────────────────────────────────────────────

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func precio(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
