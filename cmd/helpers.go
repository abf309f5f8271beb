package cmd

import (
	"context"
	"fmt"

	"github.com/maxkimambo/vetflow/internal/config"
	"github.com/maxkimambo/vetflow/internal/domain"
	"github.com/maxkimambo/vetflow/internal/logger"
	"github.com/maxkimambo/vetflow/internal/practice"
	"github.com/maxkimambo/vetflow/internal/store"
)

// openStore opens the SQLite store at path, or an in-memory store when
// path is empty. The returned func releases the store.
func openStore(ctx context.Context, path string) (store.ObjectService, func() error, error) {
	if path == "" {
		logger.Op.Debug("Using in-memory object store")
		return store.NewMemoryStore(), func() error { return nil }, nil
	}
	s, err := store.NewSQLiteStore(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open object store: %w", err)
	}
	logger.Op.Debugf("Using object store %s", path)
	return s, s.Close, nil
}

// seedDemo saves a customer, their patient, a checked-in appointment and
// the visit's invoice. The appointment is returned.
func seedDemo(ctx context.Context, svc store.ObjectService, invoiceStatus string) (*domain.Object, error) {
	customer := domain.New(domain.CustomerArchetype, "J Smith")
	if err := svc.Save(ctx, customer); err != nil {
		return nil, err
	}

	patient := domain.New(domain.PatientArchetype, "Fido")
	patient.Set(domain.NodeCustomer, customer.Ref.ID)
	if err := svc.Save(ctx, patient); err != nil {
		return nil, err
	}

	invoice := domain.New(domain.InvoiceArchetype, "Invoice for Fido")
	invoice.Set(domain.NodeStatus, invoiceStatus)
	invoice.Set(domain.NodeAmount, 120.0)
	invoice.Set(domain.NodeCustomer, customer.Ref.ID)
	invoice.Set(domain.NodePatient, patient.Ref.ID)
	if err := svc.Save(ctx, invoice); err != nil {
		return nil, err
	}

	appointment := domain.New(domain.AppointmentArchetype, "Fido check-up")
	appointment.Set(domain.NodeStatus, domain.StatusCheckedIn)
	appointment.Set(domain.NodeCustomer, customer.Ref.ID)
	appointment.Set(domain.NodePatient, patient.Ref.ID)
	appointment.Set(domain.NodeInvoice, invoice.Ref.ID)
	if err := svc.Save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// findAppointment loads the appointment with the given id, or the first
// checked-in appointment when id is empty.
func findAppointment(ctx context.Context, svc store.ObjectService, id string) (*domain.Object, error) {
	if id != "" {
		return svc.Get(ctx, domain.Reference{Archetype: domain.AppointmentArchetype, ID: id})
	}
	appointments, err := svc.List(ctx, domain.AppointmentArchetype)
	if err != nil {
		return nil, err
	}
	for _, a := range appointments {
		if a.GetString(domain.NodeStatus) == domain.StatusCheckedIn {
			return a, nil
		}
	}
	return nil, fmt.Errorf("no checked-in appointment found")
}

// newSessionContext builds the global context for a session at the
// configured practice, selected on the appointment and the objects it
// refers to.
func newSessionContext(ctx context.Context, svc store.ObjectService, cfg *config.Config, appointment *domain.Object) (*practice.LocalContext, error) {
	global := practice.NewLocalContext(nil)
	global.SetPractice(domain.New(domain.PracticeArchetype, cfg.Practice.Name))
	global.SetLocation(domain.New(domain.LocationArchetype, cfg.Practice.Location))
	global.SetTill(domain.New(domain.TillArchetype, cfg.Practice.Till))
	global.SetClinician(domain.New(domain.UserArchetype, cfg.Practice.Clinician))
	global.SetAppointment(appointment)

	refs := map[practice.Key]string{
		practice.KeyCustomer: domain.NodeCustomer,
		practice.KeyPatient:  domain.NodePatient,
		practice.KeyInvoice:  domain.NodeInvoice,
	}
	for key, node := range refs {
		id := appointment.GetString(node)
		if id == "" {
			continue
		}
		obj, err := svc.Get(ctx, domain.Reference{Archetype: key.Archetype(), ID: id})
		if err != nil {
			return nil, fmt.Errorf("failed to load %s for %s: %w", key, appointment, err)
		}
		global.Set(key, obj)
	}
	return global, nil
}
