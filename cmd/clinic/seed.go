package main

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/CoderFake/healthcare-system/internal/application/services"
	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/observability"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
	"github.com/CoderFake/healthcare-system/pkg/utils"
)

var demoDoctors = []entities.Fields{
	{"first_name": "Tran", "last_name": "Minh", "national_id": "079080001234", "gender": "male", "birth_date": "1978-03-12", "specialty": "Cardiology", "phone": "0903123456"},
	{"first_name": "Le", "last_name": "Hoa", "national_id": "079085004321", "gender": "female", "birth_date": "1985-09-30", "specialty": "Pediatrics", "phone": "0912345678"},
	{"first_name": "Pham", "last_name": "Quang", "national_id": "201234567", "gender": "male", "birth_date": "1990-01-05", "specialty": "Dermatology"},
}

var demoPatients = []entities.Fields{
	{"first_name": "Nguyen", "last_name": "An", "national_id": "079200011111", "gender": "male", "birth_date": "2000-06-15", "hometown": "Hue", "blood_type": "O+"},
	{"first_name": "Vo", "last_name": "Lan", "national_id": "079195022222", "gender": "female", "birth_date": "1995-11-02", "hometown": "Da Nang", "phone": "0987654321"},
	{"first_name": "Dang", "last_name": "Khoa", "national_id": "301234568", "gender": "male", "birth_date": "2015-04-20", "allergies": "Penicillin"},
	{"first_name": "Bui", "last_name": "Thu", "national_id": "079170033333", "gender": "female", "birth_date": "1970-08-08", "height": "158", "weight": "52"},
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo doctors, patients and appointments",
	}
	reset := cmd.Flags().Bool("reset", false, "Delete existing clinic data before seeding")

	cmd.RunE = withApp(func(ctx context.Context, a *app) error {
		logger := observability.GetLogger()

		report, err := services.NewSetupService(a.migrator, a.store, a.cfg).Run(ctx)
		if err != nil {
			return err
		}
		logger.Info().Strs("migrations", report.Migrations).Msg("database ready")

		if *reset {
			logger.Info().Msg("--reset given, deleting clinic data before seeding")
			if err := resetClinicData(ctx, a.client); err != nil {
				return err
			}
		}

		doctors := services.NewDoctorService(a.store)
		patients := services.NewPatientService(a.store)
		appointments := services.NewAppointmentService(a.store, a.cfg.Schedule, a.metrics)

		var doctorIDs, patientIDs []int64
		for _, f := range demoDoctors {
			d, err := doctors.Create(ctx, f)
			if apperrors.IsConflict(err) {
				logger.Info().Str("national_id", f["national_id"]).Msg("doctor already present")
				continue
			}
			if err != nil {
				return err
			}
			doctorIDs = append(doctorIDs, d.ID)
		}
		for _, f := range demoPatients {
			p, err := patients.Create(ctx, f)
			if apperrors.IsConflict(err) {
				logger.Info().Str("national_id", f["national_id"]).Msg("patient already present")
				continue
			}
			if err != nil {
				return err
			}
			patientIDs = append(patientIDs, p.ID)
		}

		booked := 0
		day := time.Now().AddDate(0, 0, 1).Format(utils.DateLayout)
		for i, pid := range patientIDs {
			if len(doctorIDs) == 0 {
				break
			}
			_, err := appointments.Create(ctx, entities.Fields{
				"patient_id": strconv.FormatInt(pid, 10),
				"doctor_id":  strconv.FormatInt(doctorIDs[i%len(doctorIDs)], 10),
				"date":       day,
				"time":       time.Date(0, 1, 1, a.cfg.Schedule.SlotStartHour, 0, 0, 0, time.UTC).Add(time.Duration(i*a.cfg.Schedule.SlotIntervalMinutes) * time.Minute).Format(utils.TimeLayout),
				"reason":     "Routine checkup",
			})
			if err != nil {
				logger.Warn().Err(err).Int64("patient_id", pid).Msg("skipping demo appointment")
				continue
			}
			booked++
		}

		logger.Info().
			Int("doctors", len(doctorIDs)).
			Int("patients", len(patientIDs)).
			Int("appointments", booked).
			Msg("seeding completed")
		return nil
	})
	return cmd
}

func resetClinicData(ctx context.Context, client *sqlite.Client) error {
	return client.WithTx(ctx, func(tx *sqlite.Tx) error {
		for _, table := range []string{"medical_records", "appointments", "patients", "doctors"} {
			if _, err := tx.Execute(ctx, "DELETE FROM "+table); err != nil {
				return err
			}
		}
		return nil
	})
}
