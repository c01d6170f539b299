// Package store implements the Catalog Store on SQLite. It translates the
// predicate lists produced by the predicate builder into WHERE clauses
// through a per-kind dimension whitelist, so the rest of the engine stays
// independent of the schema.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	internalErrors "github.com/Yi-lne/Hospital-Selection-System-sub001/internal/errors"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/model"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/services"
)

// CatalogStore is a read-only (from the engine's perspective) SQLite catalog
// of hospitals and doctors.
type CatalogStore struct {
	db *sql.DB
}

// hospitalColumns maps predicate dimensions to hospital columns.
var hospitalColumns = map[string]string{
	services.FieldTierLevel:    "h.hospital_level",
	services.FieldProvinceCode: "h.province_code",
	services.FieldCityCode:     "h.city_code",
	services.FieldAreaCode:     "h.area_code",
	services.FieldInsurance:    "h.is_medical_insurance",
	services.FieldDepartment:   "h.key_departments",
	services.FieldName:         "h.hospital_name",
	services.FieldRating:       "h.rating",
}

// doctorColumns maps predicate dimensions to doctor columns. Tier, geography
// and insurance resolve through the owning hospital.
var doctorColumns = map[string]string{
	services.FieldTierLevel:    "h.hospital_level",
	services.FieldProvinceCode: "h.province_code",
	services.FieldCityCode:     "h.city_code",
	services.FieldAreaCode:     "h.area_code",
	services.FieldInsurance:    "h.is_medical_insurance",
	services.FieldDepartment:   "d.specialty",
	services.FieldName:         "d.doctor_name",
	services.FieldRating:       "d.rating",
}

// NewCatalogStore opens or creates the catalog database at dbPath and
// ensures the schema exists.
func NewCatalogStore(dbPath string) (*CatalogStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &CatalogStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *CatalogStore) Close() error {
	return s.db.Close()
}

func (s *CatalogStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS hospitals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hospital_name TEXT NOT NULL,
			hospital_level TEXT NOT NULL DEFAULT 'other',
			province_code TEXT NOT NULL DEFAULT '',
			city_code TEXT NOT NULL DEFAULT '',
			area_code TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			key_departments TEXT NOT NULL DEFAULT '',
			medical_equipment TEXT NOT NULL DEFAULT '',
			intro TEXT NOT NULL DEFAULT '',
			rating REAL NOT NULL DEFAULT 0,
			review_count INTEGER NOT NULL DEFAULT 0,
			is_medical_insurance INTEGER NOT NULL DEFAULT 0,
			is_deleted INTEGER NOT NULL DEFAULT 0,
			create_time TEXT NOT NULL DEFAULT (datetime('now')),
			update_time TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE TABLE IF NOT EXISTS doctors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			doctor_name TEXT NOT NULL,
			hospital_id INTEGER NOT NULL REFERENCES hospitals(id),
			title TEXT NOT NULL DEFAULT '',
			specialty TEXT NOT NULL DEFAULT '',
			consultation_fee REAL NOT NULL DEFAULT 0,
			rating REAL NOT NULL DEFAULT 0,
			review_count INTEGER NOT NULL DEFAULT 0,
			is_deleted INTEGER NOT NULL DEFAULT 0,
			create_time TEXT NOT NULL DEFAULT (datetime('now')),
			update_time TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hospitals_city ON hospitals(city_code)`,
		`CREATE INDEX IF NOT EXISTS idx_hospitals_level ON hospitals(hospital_level)`,
		`CREATE INDEX IF NOT EXISTS idx_doctors_hospital ON doctors(hospital_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// QueryCandidates returns candidates matching every predicate, up to cap
// rows. The bool reports whether the cap was hit, meaning the matching set
// was larger than what was returned.
func (s *CatalogStore) QueryCandidates(ctx context.Context, kind model.EntityKind, predicates []services.Predicate, cap int) ([]model.Candidate, bool, error) {
	if cap <= 0 {
		return nil, false, fmt.Errorf("candidate cap must be positive, got %d", cap)
	}

	columns := hospitalColumns
	if kind == model.EntityDoctor {
		columns = doctorColumns
	}

	where, args, err := buildWhere(predicates, columns)
	if err != nil {
		return nil, false, err
	}

	var query string
	if kind == model.EntityDoctor {
		query = `SELECT d.id, d.doctor_name, h.hospital_level, h.province_code, h.city_code, h.area_code,
			d.specialty, h.is_medical_insurance, d.rating, d.review_count
			FROM doctors d JOIN hospitals h ON h.id = d.hospital_id
			WHERE d.is_deleted = 0 AND h.is_deleted = 0` + where + ` ORDER BY d.id LIMIT ?`
	} else {
		query = `SELECT h.id, h.hospital_name, h.hospital_level, h.province_code, h.city_code, h.area_code,
			h.key_departments, h.is_medical_insurance, h.rating, h.review_count
			FROM hospitals h
			WHERE h.is_deleted = 0` + where + ` ORDER BY h.id LIMIT ?`
	}

	// Fetch one row beyond the cap to detect overflow without a second query.
	args = append(args, cap+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, false, internalErrors.NewCatalogStoreError("candidate query", err)
	}
	defer rows.Close()

	candidates := make([]model.Candidate, 0, 64)
	for rows.Next() {
		var (
			cand        model.Candidate
			departments string
			tier        string
			insurance   int
		)
		if err := rows.Scan(&cand.ID, &cand.Name, &tier, &cand.ProvinceCode, &cand.CityCode, &cand.AreaCode,
			&departments, &insurance, &cand.Rating, &cand.ReviewCount); err != nil {
			return nil, false, internalErrors.NewCatalogStoreError("candidate scan", err)
		}
		cand.Kind = kind
		cand.Tier = model.TierLevel(tier)
		cand.Insurance = insurance != 0
		cand.Departments = splitDepartments(departments)
		candidates = append(candidates, cand)
	}
	if err := rows.Err(); err != nil {
		return nil, false, internalErrors.NewCatalogStoreError("candidate iteration", err)
	}

	if len(candidates) > cap {
		return candidates[:cap], true, nil
	}
	return candidates, false, nil
}

// buildWhere renders the predicate list as an AND-joined SQL fragment with a
// leading " AND ", or an empty string for an empty list.
func buildWhere(predicates []services.Predicate, columns map[string]string) (string, []interface{}, error) {
	var (
		clauses []string
		args    []interface{}
	)

	for _, pred := range predicates {
		clause, predArgs, err := renderPredicate(pred, columns)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, clause)
		args = append(args, predArgs...)
	}

	if len(clauses) == 0 {
		return "", nil, nil
	}
	return " AND " + strings.Join(clauses, " AND "), args, nil
}

func renderPredicate(pred services.Predicate, columns map[string]string) (string, []interface{}, error) {
	if len(pred.Or) > 0 {
		var (
			parts []string
			args  []interface{}
		)
		for _, sub := range pred.Or {
			clause, subArgs, err := renderPredicate(sub, columns)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, clause)
			args = append(args, subArgs...)
		}
		return "(" + strings.Join(parts, " OR ") + ")", args, nil
	}

	column, ok := columns[pred.Field]
	if !ok {
		return "", nil, fmt.Errorf("dimension '%s' is not filterable for this entity kind", pred.Field)
	}

	value := pred.Value
	if b, isBool := value.(bool); isBool {
		if b {
			value = 1
		} else {
			value = 0
		}
	}

	switch pred.Operator {
	case services.OpEquals:
		return column + " = ?", []interface{}{value}, nil
	case services.OpGte:
		return column + " >= ?", []interface{}{value}, nil
	case services.OpLte:
		return column + " <= ?", []interface{}{value}, nil
	case services.OpContains:
		return column + " LIKE ? ESCAPE '\\'", []interface{}{"%" + escapeLike(fmt.Sprintf("%v", value)) + "%"}, nil
	default:
		return "", nil, fmt.Errorf("unknown predicate operator '%s' for dimension '%s'", pred.Operator, pred.Field)
	}
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// splitDepartments splits the key_departments column, which holds a
// comma-separated list in either ASCII or fullwidth punctuation.
func splitDepartments(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '，' || r == '、' || r == ';'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetHospital looks up one hospital by ID.
func (s *CatalogStore) GetHospital(ctx context.Context, id int64) (*model.Hospital, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, hospital_name, hospital_level, province_code, city_code,
		area_code, address, phone, key_departments, medical_equipment, intro, rating, review_count,
		is_medical_insurance, create_time, update_time
		FROM hospitals WHERE id = ? AND is_deleted = 0`, id)

	var (
		h           model.Hospital
		departments string
		insurance   int
		created     string
		updated     string
	)
	err := row.Scan(&h.ID, &h.Name, &h.Tier, &h.ProvinceCode, &h.CityCode, &h.AreaCode, &h.Address,
		&h.Phone, &departments, &h.MedicalEquipment, &h.Intro, &h.Rating, &h.ReviewCount,
		&insurance, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, internalErrors.NewEntityNotFoundError("hospital", id)
	}
	if err != nil {
		return nil, internalErrors.NewCatalogStoreError("hospital lookup", err)
	}

	h.KeyDepartments = splitDepartments(departments)
	h.Insurance = insurance != 0
	h.CreatedAt = parseTime(created)
	h.UpdatedAt = parseTime(updated)
	return &h, nil
}

// GetDoctor looks up one doctor by ID, including the owning hospital's name.
func (s *CatalogStore) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	row := s.db.QueryRowContext(ctx, `SELECT d.id, d.doctor_name, d.hospital_id, h.hospital_name, d.title,
		d.specialty, d.consultation_fee, d.rating, d.review_count, d.create_time, d.update_time
		FROM doctors d JOIN hospitals h ON h.id = d.hospital_id
		WHERE d.id = ? AND d.is_deleted = 0`, id)

	var (
		d       model.Doctor
		created string
		updated string
	)
	err := row.Scan(&d.ID, &d.Name, &d.HospitalID, &d.HospitalName, &d.Title, &d.Specialty,
		&d.ConsultationFee, &d.Rating, &d.ReviewCount, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, internalErrors.NewEntityNotFoundError("doctor", id)
	}
	if err != nil {
		return nil, internalErrors.NewCatalogStoreError("doctor lookup", err)
	}

	d.CreatedAt = parseTime(created)
	d.UpdatedAt = parseTime(updated)
	return &d, nil
}

// SuggestNames returns up to limit entity names containing the keyword, in
// rating order. Used by the suggestions endpoint.
func (s *CatalogStore) SuggestNames(ctx context.Context, kind model.EntityKind, keyword string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	var query string
	if kind == model.EntityDoctor {
		query = `SELECT doctor_name FROM doctors WHERE is_deleted = 0 AND doctor_name LIKE ? ESCAPE '\'
			ORDER BY rating DESC, id LIMIT ?`
	} else {
		query = `SELECT hospital_name FROM hospitals WHERE is_deleted = 0 AND hospital_name LIKE ? ESCAPE '\'
			ORDER BY rating DESC, id LIMIT ?`
	}

	rows, err := s.db.QueryContext(ctx, query, "%"+escapeLike(keyword)+"%", limit)
	if err != nil {
		return nil, internalErrors.NewCatalogStoreError("name suggestion query", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, internalErrors.NewCatalogStoreError("name suggestion scan", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// InsertHospital adds a hospital row. Catalog provisioning is an operator
// concern; the filtering pipeline itself never writes.
func (s *CatalogStore) InsertHospital(ctx context.Context, h model.Hospital) (int64, error) {
	insurance := 0
	if h.Insurance {
		insurance = 1
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO hospitals
		(hospital_name, hospital_level, province_code, city_code, area_code, address, phone,
		 key_departments, medical_equipment, intro, rating, review_count, is_medical_insurance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.Name, string(h.Tier), h.ProvinceCode, h.CityCode, h.AreaCode, h.Address, h.Phone,
		strings.Join(h.KeyDepartments, ","), h.MedicalEquipment, h.Intro, h.Rating, h.ReviewCount, insurance)
	if err != nil {
		return 0, internalErrors.NewCatalogStoreError("hospital insert", err)
	}
	return res.LastInsertId()
}

// InsertDoctor adds a doctor row.
func (s *CatalogStore) InsertDoctor(ctx context.Context, d model.Doctor) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO doctors
		(doctor_name, hospital_id, title, specialty, consultation_fee, rating, review_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.Name, d.HospitalID, d.Title, d.Specialty, d.ConsultationFee, d.Rating, d.ReviewCount)
	if err != nil {
		return 0, internalErrors.NewCatalogStoreError("doctor insert", err)
	}
	return res.LastInsertId()
}

func parseTime(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
