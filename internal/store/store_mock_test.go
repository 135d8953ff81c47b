package store

import (
	"context"
	"errors"
	"omnivox-backend/internal/scrapers/omnivox"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSaveScheduleRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	failure := errors.New("disk full")
	mock.ExpectBegin()
	mock.ExpectExec("insert into semester").
		WithArgs("20241", "Fall 2024", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("delete from course").
		WithArgs("20241").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("insert into course").
		WithArgs("20241", int64(0), "345-102-MQ", "00001", "Intro to X", "Jane Doe").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("insert into course").
		WithArgs("20241", int64(1), "201-NYA-05", "00003", "Calculus I", "").
		WillReturnError(failure)
	mock.ExpectRollback()

	err = SaveSchedule(context.Background(), NewMakeTx(db), omnivox.Schedule{
		Semester: omnivox.Semester{Id: "20241", Name: "Fall 2024", Current: true},
		Courses: []omnivox.Course{
			{Number: "345-102-MQ", Section: "00001", Title: "Intro to X", Teacher: "Jane Doe"},
			{Number: "201-NYA-05", Section: "00003", Title: "Calculus I"},
		},
	})
	require.ErrorIs(t, err, failure)
	require.ErrorContains(t, err, "insert course 1 of 20241")
	require.NoError(t, mock.ExpectationsWereMet())
}
