package store

import (
	"context"
	"database/sql"
	"errors"
	"omnivox-backend/internal/scrapers/omnivox"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	qry := New(db)
	makeTx := NewMakeTx(db)

	_, err = LoadSchedule(ctx, qry, "20241")
	require.True(t, errors.Is(err, sql.ErrNoRows), err)

	fall := omnivox.Schedule{
		Semester: omnivox.Semester{Id: "20241", Name: "Fall 2024", Current: true},
		Courses: []omnivox.Course{
			{Number: "345-102-MQ", Section: "00001", Title: "Intro to X", Teacher: "Jane Doe"},
			{Number: "201-NYA-05", Section: "00003", Title: "Calculus I"},
		},
	}
	err = SaveSchedule(ctx, makeTx, fall)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadSchedule(ctx, qry, "20241")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fall, loaded); diff != "" {
		t.Fatalf("unexpected schedule (-want +got):\n%s", diff)
	}

	// saving again replaces the courses instead of appending
	fall.Semester.Current = false
	fall.Courses = fall.Courses[1:]
	err = SaveSchedule(ctx, makeTx, fall)
	if err != nil {
		t.Fatal(err)
	}
	loaded, err = LoadSchedule(ctx, qry, "20241")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fall, loaded); diff != "" {
		t.Fatalf("unexpected schedule (-want +got):\n%s", diff)
	}

	err = SaveSchedule(ctx, makeTx, omnivox.Schedule{
		Semester: omnivox.Semester{Id: "20233", Name: "Winter 2024"},
		Courses:  []omnivox.Course{},
	})
	if err != nil {
		t.Fatal(err)
	}
	empty, err := LoadSchedule(ctx, qry, "20233")
	require.NoError(t, err)
	require.Empty(t, empty.Courses)

	semesters, err := qry.GetSemesters(ctx)
	require.NoError(t, err)
	require.Equal(t, []Semester{
		{ID: "20241", Name: "Fall 2024"},
		{ID: "20233", Name: "Winter 2024"},
	}, semesters)
}

func TestSaveScheduleRollback(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	qry := New(db)

	original := omnivox.Schedule{
		Semester: omnivox.Semester{Id: "20241", Name: "Fall 2024"},
		Courses:  []omnivox.Course{{Number: "345-102-MQ", Title: "Intro to X"}},
	}
	err = SaveSchedule(ctx, NewMakeTx(db), original)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = SaveSchedule(cancelled, NewMakeTx(db), omnivox.Schedule{Semester: original.Semester})
	require.Error(t, err)

	loaded, err := LoadSchedule(ctx, qry, "20241")
	require.NoError(t, err)
	require.Equal(t, original.Courses, loaded.Courses)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schedules.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	err = SaveSchedule(ctx, NewMakeTx(db), omnivox.Schedule{
		Semester: omnivox.Semester{Id: "20241", Name: "Fall 2024"},
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// the schema is applied again on an existing database
	db, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	semesters, err := New(db).GetSemesters(ctx)
	require.NoError(t, err)
	require.Len(t, semesters, 1)
}
