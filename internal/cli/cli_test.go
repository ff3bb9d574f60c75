package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
	mock_parser "github.com/orgball2608/insta-post-exporter/internal/parser/mocks"
	"github.com/orgball2608/insta-post-exporter/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T {
	return &v
}

func TestScrapeFlagsApply(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		args       []string
		positional []string
		check      func(t *testing.T, cfg *config.Config)
		wantErr    bool
	}{
		{
			name:       "usernames from flags and args",
			args:       []string{"-u", "nasa", "--username", "esa"},
			positional: []string{"spacex"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, []string{"nasa", "esa", "spacex"}, cfg.Parser.Usernames)
				assert.Equal(t, "data/inputs.txt", cfg.Parser.InputFile)
			},
		},
		{
			name: "input file replaces configured usernames",
			args: []string{"-i", "targets.txt"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Nil(t, cfg.Parser.Usernames)
				assert.Equal(t, "targets.txt", cfg.Parser.InputFile)
			},
		},
		{
			name: "caps formats and output dir",
			args: []string{"-m", "25", "-f", "json,excel", "-o", "exports"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 25, cfg.Scraper.MaxPosts)
				assert.Equal(t, []string{"json", "excel"}, cfg.Export.Formats)
				assert.Equal(t, "exports", cfg.Export.OutputDir)
				assert.Equal(t, []string{"natgeo"}, cfg.Parser.Usernames)
			},
		},
		{
			name: "unset flags keep config",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 100, cfg.Scraper.MaxPosts)
				assert.Equal(t, []string{"csv"}, cfg.Export.Formats)
				assert.Equal(t, "data", cfg.Export.OutputDir)
			},
		},
		{
			name:    "negative cap",
			args:    []string{"-m", "-1"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &config.Config{}
			cfg.Parser.Usernames = []string{"natgeo"}
			cfg.Parser.InputFile = "data/inputs.txt"
			cfg.Scraper.MaxPosts = 100
			cfg.Export.Formats = []string{"csv"}
			cfg.Export.OutputDir = "data"

			f := &scrapeFlags{}
			cmd := &cobra.Command{Use: "scrape"}
			f.register(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			err := f.apply(cmd, tt.positional, cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestRunScrape(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	client := mock_parser.NewMockClient(ctrl)

	targets := []domain.ProfileTarget{{Username: "nasa"}, {Username: "ghost_account"}}
	client.EXPECT().ParseProfiles(gomock.Any(), targets).Return([]domain.ProfileResult{
		{Username: "nasa", Posts: 1234, Files: map[string]string{"json": "data/nasa_posts.json", "csv": "data/nasa_posts.csv"}},
		{Username: "ghost_account", Err: errors.New("profile 'ghost_account' not found")},
	})

	var out bytes.Buffer
	err := runScrape(context.Background(), &out, client, targets)
	assert.EqualError(t, err, "1 of 2 profiles failed")

	table := out.String()
	assert.Contains(t, table, "nasa")
	assert.Contains(t, table, "1,234")
	assert.Contains(t, table, "data/nasa_posts.csv")
	assert.Contains(t, table, "data/nasa_posts.json")
	assert.Contains(t, table, "not found")
	assert.Contains(t, table, "╭")
}

func TestRunScrape_AllOK(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	client := mock_parser.NewMockClient(ctrl)

	targets := []domain.ProfileTarget{{Username: "nasa"}}
	client.EXPECT().ParseProfiles(gomock.Any(), targets).Return([]domain.ProfileResult{{Username: "nasa"}})

	var out bytes.Buffer
	assert.NoError(t, runScrape(context.Background(), &out, client, targets))
	assert.Contains(t, out.String(), "ok")
}

func TestRenderHistory(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	renderHistory(&out, []domain.PostRecord{
		{
			ShortCode:    ptr("C001"),
			PostDate:     ptr("2024-01-23 08:53"),
			LikeCount:    ptr(int64(12000)),
			CommentCount: ptr(int64(45)),
			Caption:      ptr("Liftoff!\nsecond line"),
		},
		{ShortCode: ptr("C002")},
	})

	got := out.String()
	assert.Contains(t, got, "2024-01-23 08:53")
	assert.Contains(t, got, "C001")
	assert.Contains(t, got, "12,000")
	assert.Contains(t, got, "Liftoff!")
	assert.NotContains(t, got, "second line")
	assert.Contains(t, got, "C002")
}

func TestHistory_RequiresStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"history", "nasa", "-c", path})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "record store")
}

func TestScrape_MissingInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"scrape", "-c", path, "--input-file", filepath.Join(t.TempDir(), "missing.txt")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to open input file")
	assert.ErrorContains(t, err, "--input-file")
}

const profilePage = `{"data":{"user":{"edge_owner_to_timeline_media":{
	"count":2,
	"page_info":{"has_next_page":false,"end_cursor":null},
	"edges":[
		{"node":{"__typename":"GraphImage","id":"3001","shortcode":"C001","taken_at_timestamp":1706000000,
			"owner":{"id":"528817151"},"edge_liked_by":{"count":10},
			"edge_media_to_caption":{"edges":[{"node":{"text":"Liftoff #space"}}]}}},
		{"node":{"__typename":"GraphImage","id":"3002","shortcode":"C002","taken_at_timestamp":1706003600}}
	]}}}}`

func TestScrapeCommand_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/nasa/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, profilePage)
	}))
	defer srv.Close()

	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(settings, []byte(fmt.Sprintf(`{
		"app": {"log_level": "error"},
		"scraper": {"base_url": %q, "retries": 0},
		"export": {"output_dir": %q, "output_formats": ["json", "csv"]}
	}`, srv.URL, filepath.Join(dir, "out"))), 0o600))

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"scrape", "-c", settings, "nasa"})
	cmd.SetOut(&out)

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.FileExists(t, filepath.Join(dir, "out", "nasa_posts.json"))
	assert.FileExists(t, filepath.Join(dir, "out", "nasa_posts.csv"))

	raw, err := os.ReadFile(filepath.Join(dir, "out", "nasa_posts.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"postShortCode": "C001"`)
	assert.Contains(t, string(raw), `"#space"`)
	assert.Contains(t, out.String(), "nasa")
}
