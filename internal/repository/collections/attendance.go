package collections

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/hadirku/hadirku-backend-go/internal/domain/attendance"
	"github.com/hadirku/hadirku-backend-go/internal/repository/docstore"
)

type storedAttendance struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	UserFullName string `json:"user_full_name"`
	UserUnit     string `json:"user_unit"`
	Date         string `json:"date"`

	CheckInTime     time.Time `json:"check_in_time"`
	CheckInLocation string    `json:"check_in_location"`
	CheckInPhotoURL string    `json:"check_in_photo_url"`
	Status          string    `json:"status"`

	CheckOutTime     *time.Time `json:"check_out_time,omitempty"`
	CheckOutLocation *string    `json:"check_out_location,omitempty"`
	CheckOutPhotoURL *string    `json:"check_out_photo_url,omitempty"`
}

type attendanceRepository struct {
	store docstore.Store
}

func NewAttendanceRepository(store docstore.Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func (r *attendanceRepository) load(ctx context.Context) ([]storedAttendance, error) {
	data, err := r.store.Load(ctx, docstore.CollectionAttendance)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var records []storedAttendance
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance collection: %w", err)
	}
	return records, nil
}

func (r *attendanceRepository) save(ctx context.Context, records []storedAttendance) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode attendance collection: %w", err)
	}
	return r.store.Save(ctx, docstore.CollectionAttendance, data)
}

func toStoredAttendance(rec attendance.AttendanceRecord) storedAttendance {
	return storedAttendance{
		ID:               rec.ID,
		UserID:           rec.UserID,
		UserFullName:     rec.UserFullName,
		UserUnit:         rec.UserUnit,
		Date:             rec.Date,
		CheckInTime:      rec.CheckInTime,
		CheckInLocation:  rec.CheckInLocation,
		CheckInPhotoURL:  rec.CheckInPhotoURL,
		Status:           string(rec.Status),
		CheckOutTime:     rec.CheckOutTime,
		CheckOutLocation: rec.CheckOutLocation,
		CheckOutPhotoURL: rec.CheckOutPhotoURL,
	}
}

func toDomainAttendance(s storedAttendance) attendance.AttendanceRecord {
	return attendance.AttendanceRecord{
		ID:               s.ID,
		UserID:           s.UserID,
		UserFullName:     s.UserFullName,
		UserUnit:         s.UserUnit,
		Date:             s.Date,
		CheckInTime:      s.CheckInTime,
		CheckInLocation:  s.CheckInLocation,
		CheckInPhotoURL:  s.CheckInPhotoURL,
		Status:           attendance.Status(s.Status),
		CheckOutTime:     s.CheckOutTime,
		CheckOutLocation: s.CheckOutLocation,
		CheckOutPhotoURL: s.CheckOutPhotoURL,
	}
}

// sortRecent orders records most recent first: by date, then by check-in
// time within the same date.
func sortRecent(records []storedAttendance) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].CheckInTime.After(records[j].CheckInTime)
	})
}

// Create implements attendance.AttendanceRepository. The (UserID, Date)
// pair is the collection key: creating a second record for the same pair
// fails instead of silently duplicating.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	records, err := r.load(ctx)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	for _, existing := range records {
		if existing.UserID == record.UserID && existing.Date == record.Date {
			return attendance.AttendanceRecord{}, attendance.ErrAlreadyCheckedIn
		}
	}

	records = append(records, toStoredAttendance(record))
	if err := r.save(ctx, records); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	return record, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*attendance.AttendanceRecord, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.UserID == userID && rec.Date == date {
			domain := toDomainAttendance(rec)
			return &domain, nil
		}
	}

	return nil, nil // no record for this user and date
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, record attendance.AttendanceRecord) error {
	records, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == record.ID {
			records[i] = toStoredAttendance(record)
			return r.save(ctx, records)
		}
	}

	return attendance.ErrAttendanceNotFound
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.AttendanceRecord, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var mine []storedAttendance
	for _, rec := range records {
		if rec.UserID == userID {
			mine = append(mine, rec)
		}
	}
	sortRecent(mine)

	result := make([]attendance.AttendanceRecord, 0, len(mine))
	for _, rec := range mine {
		result = append(result, toDomainAttendance(rec))
	}
	return result, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context) ([]attendance.AttendanceRecord, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	sortRecent(records)

	result := make([]attendance.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		result = append(result, toDomainAttendance(rec))
	}
	return result, nil
}
