package store

import (
	"context"
)

const upsertSemester = `
insert into semester (id, name, current) values (?, ?, ?)
on conflict (id) do update set
    name = excluded.name,
    current = excluded.current
`

type UpsertSemesterParams struct {
	ID      string
	Name    string
	Current bool
}

func (q *Queries) UpsertSemester(ctx context.Context, arg UpsertSemesterParams) error {
	_, err := q.db.ExecContext(ctx, upsertSemester, arg.ID, arg.Name, arg.Current)
	return err
}

const deleteCourses = `
delete from course where semester_id = ?
`

func (q *Queries) DeleteCourses(ctx context.Context, semesterID string) error {
	_, err := q.db.ExecContext(ctx, deleteCourses, semesterID)
	return err
}

const insertCourse = `
insert into course (semester_id, position, number, section, title, teacher)
values (?, ?, ?, ?, ?, ?)
`

type InsertCourseParams struct {
	SemesterID string
	Position   int64
	Number     string
	Section    string
	Title      string
	Teacher    string
}

func (q *Queries) InsertCourse(ctx context.Context, arg InsertCourseParams) error {
	_, err := q.db.ExecContext(
		ctx, insertCourse,
		arg.SemesterID,
		arg.Position,
		arg.Number,
		arg.Section,
		arg.Title,
		arg.Teacher,
	)
	return err
}

const getSemester = `
select id, name, current from semester where id = ?
`

func (q *Queries) GetSemester(ctx context.Context, id string) (Semester, error) {
	row := q.db.QueryRowContext(ctx, getSemester, id)
	var i Semester
	err := row.Scan(&i.ID, &i.Name, &i.Current)
	return i, err
}

const getSemesters = `
select id, name, current from semester order by id desc
`

func (q *Queries) GetSemesters(ctx context.Context) ([]Semester, error) {
	rows, err := q.db.QueryContext(ctx, getSemesters)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Semester
	for rows.Next() {
		var i Semester
		if err := rows.Scan(&i.ID, &i.Name, &i.Current); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getCourses = `
select semester_id, position, number, section, title, teacher from course
where semester_id = ?
order by position asc
`

func (q *Queries) GetCourses(ctx context.Context, semesterID string) ([]Course, error) {
	rows, err := q.db.QueryContext(ctx, getCourses, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Course
	for rows.Next() {
		var i Course
		if err := rows.Scan(
			&i.SemesterID,
			&i.Position,
			&i.Number,
			&i.Section,
			&i.Title,
			&i.Teacher,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
