package dictionary

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImporter_ImportCSV(t *testing.T) {
	tests := []struct {
		name      string
		csv       string
		setupMock func(mock sqlmock.Sqlmock)
		wantCount int
		wantErr   bool
	}{
		{
			name: "imports rows with full headers",
			csv: `surface,lemma,pos,translation_ja,example_ko,example_ja,tags
사과,사과,noun,りんご,사과를 먹다,りんごを食べる,fruit
먹었다,먹다,verb,食べる,,,
`,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO dict").
					WithArgs("사과", "사과", "noun", "りんご", "사과를 먹다", "りんごを食べる", "fruit").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO dict").
					WithArgs("먹었다", "먹다", "verb", "食べる", "", "", "").
					WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectCommit()
			},
			wantCount: 2,
		},
		{
			name: "word header is accepted and lemma defaults to surface",
			csv: `word,translation_ja
사과,りんご
`,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO dict").
					WithArgs("사과", "사과", "", "りんご", "", "", "").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			wantCount: 1,
		},
		{
			name:      "header-only file imports nothing",
			csv:       "surface,lemma\n",
			setupMock: func(mock sqlmock.Sqlmock) {},
			wantCount: 0,
		},
		{
			name:      "empty file imports nothing",
			csv:       "",
			setupMock: func(mock sqlmock.Sqlmock) {},
			wantCount: 0,
		},
		{
			name: "insert failure rolls back",
			csv: `surface
사과
`,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO dict").
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			sqlxDB := sqlx.NewDb(db, "sqlite3")
			importer := NewImporter(sqlxDB)
			tt.setupMock(mock)

			count, err := importer.ImportCSV(context.Background(), strings.NewReader(tt.csv))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIsLockedErr(t *testing.T) {
	assert.False(t, isLockedErr(nil))
	assert.False(t, isLockedErr(assert.AnError))
	assert.True(t, isLockedErr(errLocked{}))
}

type errLocked struct{}

func (errLocked) Error() string { return "sqlite3: database is locked" }
