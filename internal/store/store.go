package store

import (
	"context"
	"database/sql"
	"fmt"
	"omnivox-backend/internal/scrapers/omnivox"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) a sqlite database at path and makes sure the
// schema exists.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// sqlite serializes writers anyway, and every connection to :memory: would
	// get its own empty database
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("open db: %w", err)
		}
	}
	_, err = db.Exec(Schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// SaveSchedule replaces everything stored for the schedule's semester.
func SaveSchedule(ctx context.Context, makeTx MakeTx, schedule omnivox.Schedule) error {
	txqry, discard, commit, err := makeTx(ctx)
	if err != nil {
		return err
	}
	defer discard()

	semester := schedule.Semester
	err = txqry.UpsertSemester(ctx, UpsertSemesterParams{
		ID:      semester.Id,
		Name:    semester.Name,
		Current: semester.Current,
	})
	if err != nil {
		return fmt.Errorf("upsert semester %s: %w", semester.Id, err)
	}
	err = txqry.DeleteCourses(ctx, semester.Id)
	if err != nil {
		return fmt.Errorf("delete courses of %s: %w", semester.Id, err)
	}
	for i, course := range schedule.Courses {
		err = txqry.InsertCourse(ctx, InsertCourseParams{
			SemesterID: semester.Id,
			Position:   int64(i),
			Number:     course.Number,
			Section:    course.Section,
			Title:      course.Title,
			Teacher:    course.Teacher,
		})
		if err != nil {
			return fmt.Errorf("insert course %d of %s: %w", i, semester.Id, err)
		}
	}

	return commit()
}

// LoadSchedule reads a stored schedule back, courses keep the order they
// were saved in. If the semester was never saved the error wraps sql.ErrNoRows.
func LoadSchedule(ctx context.Context, qry *Queries, semesterId string) (omnivox.Schedule, error) {
	semester, err := qry.GetSemester(ctx, semesterId)
	if err != nil {
		return omnivox.Schedule{}, fmt.Errorf("get semester %s: %w", semesterId, err)
	}
	rows, err := qry.GetCourses(ctx, semesterId)
	if err != nil {
		return omnivox.Schedule{}, fmt.Errorf("get courses of %s: %w", semesterId, err)
	}

	courses := make([]omnivox.Course, len(rows))
	for i, r := range rows {
		courses[i] = omnivox.Course{
			Number:  r.Number,
			Section: r.Section,
			Title:   r.Title,
			Teacher: r.Teacher,
		}
	}
	return omnivox.Schedule{
		Semester: omnivox.Semester{
			Id:      semester.ID,
			Name:    semester.Name,
			Current: semester.Current,
		},
		Courses: courses,
	}, nil
}
