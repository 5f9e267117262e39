package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"stylometer/internal/merror"
	"stylometer/internal/similarity"
	"stylometer/internal/textmodel"
)

// timeLayout sorts lexically in time order, unlike RFC3339Nano.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// PersistModel stores every distribution of m, replacing what the catalog
// held for a model of the same name.
func PersistModel(dbPath string, m *textmodel.Model) error {
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`INSERT INTO models(name, updated_at) VALUES(?,?) ON CONFLICT(name) DO UPDATE SET updated_at=excluded.updated_at`,
		m.Name, now,
	); err != nil {
		return fmt.Errorf("upsert model: %w", err)
	}
	var id int64
	if err := tx.QueryRow(`SELECT id FROM models WHERE name = ?`, m.Name).Scan(&id); err != nil {
		return fmt.Errorf("model id: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM features WHERE model_id = ?`, id); err != nil {
		return fmt.Errorf("clear features: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO features(model_id, feature, key, count) VALUES(?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare feature insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range textmodel.Features {
		if f.IntKeyed() {
			c := m.IntCounts(f)
			for _, k := range c.Keys() {
				if _, err := stmt.Exec(id, f.String(), strconv.Itoa(k), c[k]); err != nil {
					return fmt.Errorf("insert %s: %w", f, err)
				}
			}
			continue
		}
		c := m.StringCounts(f)
		for _, k := range c.Keys() {
			if _, err := stmt.Exec(id, f.String(), k, c[k]); err != nil {
				return fmt.Errorf("insert %s: %w", f, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// LoadModel rebuilds the named model from the catalog.
func LoadModel(dbPath, name string) (*textmodel.Model, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var id int64
	err = conn.QueryRow(`SELECT id FROM models WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, merror.Unavailable("load model "+name, err)
	}
	if err != nil {
		return nil, fmt.Errorf("model id: %w", err)
	}

	rows, err := conn.Query(`SELECT feature, key, count FROM features WHERE model_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	m := textmodel.New(name)
	for rows.Next() {
		var (
			featureName, key string
			count            int
		)
		if err := rows.Scan(&featureName, &key, &count); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		f, err := textmodel.ParseFeature(featureName)
		if err != nil {
			return nil, &merror.ParseError{Source: "features", Msg: err.Error()}
		}
		if f.IntKeyed() {
			n, err := strconv.Atoi(key)
			if err != nil {
				return nil, &merror.ParseError{Source: "features", Msg: fmt.Sprintf("%s key %q is not an integer", f, key)}
			}
			m.IntCounts(f)[n] = count
			continue
		}
		m.StringCounts(f)[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate features: %w", err)
	}
	return m, nil
}

func ListModels(dbPath string) ([]string, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT name FROM models ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query models: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

type ClassificationRecord struct {
	ID        string
	CreatedAt time.Time
	Result    similarity.Result
}

// RecordClassification appends r to the classification history and returns
// the identifier of the new row.
func RecordClassification(dbPath string, r similarity.Result) (string, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	scoresA, err := json.Marshal(r.Candidates[0].Scores)
	if err != nil {
		return "", fmt.Errorf("marshal scores: %w", err)
	}
	scoresB, err := json.Marshal(r.Candidates[1].Scores)
	if err != nil {
		return "", fmt.Errorf("marshal scores: %w", err)
	}

	id := uuid.NewString()
	if _, err := conn.Exec(
		`INSERT INTO classifications(id, unknown, candidate_a, candidate_b, scores_a, scores_b, votes_a, votes_b, winner, created_at) VALUES(?,?,?,?,?,?,?,?,?,?)`,
		id,
		r.Unknown,
		r.Candidates[0].Name,
		r.Candidates[1].Name,
		string(scoresA),
		string(scoresB),
		r.Candidates[0].Votes,
		r.Candidates[1].Votes,
		r.Winner,
		time.Now().UTC().Format(timeLayout),
	); err != nil {
		return "", fmt.Errorf("insert classification: %w", err)
	}
	return id, nil
}

// ListClassifications returns the most recent classifications first. A limit
// of zero or less returns every row.
func ListClassifications(dbPath string, limit int) ([]ClassificationRecord, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if limit <= 0 {
		limit = -1
	}
	rows, err := conn.Query(
		`SELECT id, unknown, candidate_a, candidate_b, scores_a, scores_b, votes_a, votes_b, winner, created_at
		 FROM classifications ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}
	defer rows.Close()

	var out []ClassificationRecord
	for rows.Next() {
		var (
			rec              ClassificationRecord
			scoresA, scoresB string
			created          string
		)
		a, b := &rec.Result.Candidates[0], &rec.Result.Candidates[1]
		if err := rows.Scan(&rec.ID, &rec.Result.Unknown, &a.Name, &b.Name, &scoresA, &scoresB, &a.Votes, &b.Votes, &rec.Result.Winner, &created); err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		if err := json.Unmarshal([]byte(scoresA), &a.Scores); err != nil {
			return nil, &merror.ParseError{Source: "scores_a", Msg: err.Error()}
		}
		if err := json.Unmarshal([]byte(scoresB), &b.Scores); err != nil {
			return nil, &merror.ParseError{Source: "scores_b", Msg: err.Error()}
		}
		rec.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, &merror.ParseError{Source: "created_at", Msg: err.Error()}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func CountRows(dbPath, table string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countRowsConn(conn, table)
}

func countRowsConn(conn *sql.DB, table string) (int, error) {
	row := conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
