//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/stemsi/kinderbook/internal/model"
)

const (
	defaultBaseURL = "http://localhost:8080"
)

var (
	baseURL string
	dbURL   string
	alexID  int64
)

func TestMain(m *testing.M) {
	// Load .env if present (ignore error)
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	// Only checked when the server stores snapshots in Postgres.
	if strings.EqualFold(os.Getenv("STORAGE_DRIVER"), "postgres") {
		dbURL = os.Getenv("DATABASE_URL")
	}

	// Start from an empty address book.
	resp, err := command("clear")
	if err != nil {
		fmt.Printf("Setup failed: %v\n", err)
		os.Exit(1)
	}
	resp.Body.Close()

	os.Exit(m.Run())
}

func TestE2EFlow(t *testing.T) {
	t.Run("AddChildren", func(t *testing.T) {
		for _, input := range []string{
			"add c/Alex Yeoh b/Sam Yeoh p/98765432 e/sam@example.com a/311, Clementi Ave 2 r/peanuts",
			"add c/Bernice Yu b/Ben Yu p/99272758 e/ben@example.com a/Blk 30 Lorong 3 t/twins",
		} {
			resp, err := command(input)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
			}
			resp.Body.Close()
		}
	})

	t.Run("AddDuplicateChild", func(t *testing.T) {
		resp, err := command("add c/alex yeoh b/sam yeoh p/91234567 e/other@example.com a/Somewhere 1")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("Expected status 409 Conflict, got %d. Body: %s", resp.StatusCode, readBody(resp))
		}
	})

	t.Run("ListPersons", func(t *testing.T) {
		resp, err := get("/api/v1/persons")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		var body struct {
			Data struct {
				Persons []model.PersonView `json:"persons"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		if len(body.Data.Persons) != 2 {
			t.Fatalf("expected 2 persons, got %d", len(body.Data.Persons))
		}
		alexID = int64(body.Data.Persons[0].ID)
	})

	t.Run("StreamScoreChanges", func(t *testing.T) {
		url := "ws" + strings.TrimPrefix(baseURL, "http") + "/ws/v1/scores"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()
		conn.SetReadDeadline(time.Now().Add(10 * time.Second))

		for _, input := range []string{"enroll all s/math", "setscore 1 s/math g/85"} {
			resp, err := command(input)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("%q status %d: %s", input, resp.StatusCode, readBody(resp))
			}
			resp.Body.Close()
		}

		// two enrollments, then the score update
		var last map[string]any
		for i := 0; i < 3; i++ {
			if err := conn.ReadJSON(&last); err != nil {
				t.Fatalf("read event %d: %v", i, err)
			}
		}
		if last["kind"] != "updated" || last["score"] != float64(85) {
			t.Fatalf("unexpected last event %v", last)
		}
	})

	t.Run("PersonScores", func(t *testing.T) {
		resp, err := get(fmt.Sprintf("/api/v1/persons/%d/scores", alexID))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		var body struct {
			Data struct {
				Scores []struct {
					Subject string `json:"subject"`
					Score   int    `json:"score"`
				} `json:"scores"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		if len(body.Data.Scores) != 1 || body.Data.Scores[0].Subject != "MATH" || body.Data.Scores[0].Score != 85 {
			t.Fatalf("unexpected scores %+v", body.Data.Scores)
		}
	})

	t.Run("EditKeepsScore", func(t *testing.T) {
		resp, err := command("edit 1 c/Alexander Yeoh")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		resp, err = get("/api/v1/subjects/math/scores")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		var body struct {
			Data struct {
				Scores []struct {
					PersonID int64  `json:"person_id"`
					Child    string `json:"child"`
					Score    int    `json:"score"`
				} `json:"scores"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		first := body.Data.Scores[0]
		if first.PersonID != alexID || first.Child != "Alexander Yeoh" || first.Score != 85 {
			t.Fatalf("edit lost enrollment: %+v", first)
		}
	})

	t.Run("PersistedInPostgres", func(t *testing.T) {
		if dbURL == "" {
			t.Skip("server is not using Postgres storage")
		}
		ctx := context.Background()
		conn, err := pgx.Connect(ctx, dbURL)
		if err != nil {
			t.Fatalf("db connect: %v", err)
		}
		defer conn.Close(ctx)

		var score int
		err = conn.QueryRow(ctx,
			`SELECT score FROM enrollments WHERE subject = 'MATH' AND person_id = $1`, alexID).Scan(&score)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if score != 85 {
			t.Fatalf("stored score: want 85, got %d", score)
		}
	})

	t.Run("DeleteCascades", func(t *testing.T) {
		resp, err := command("delete 1")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		resp, err = get("/api/v1/subjects")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		var body struct {
			Data struct {
				Subjects []struct {
					Name     string `json:"name"`
					Enrolled int    `json:"enrolled"`
				} `json:"subjects"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		if body.Data.Subjects[0].Name != "MATH" || body.Data.Subjects[0].Enrolled != 1 {
			t.Fatalf("unexpected subjects %+v", body.Data.Subjects)
		}
	})
}

// Helpers

func command(input string) (*http.Response, error) {
	return post("/api/v1/commands", map[string]string{"input": input})
}

func post(path string, body any) (*http.Response, error) {
	jsonBytes, _ := json.Marshal(body)
	req, err := http.NewRequest("POST", baseURL+path, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func get(path string) (*http.Response, error) {
	req, err := http.NewRequest("GET", baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("json decode: %v", err)
	}
}
