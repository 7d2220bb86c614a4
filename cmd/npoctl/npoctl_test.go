package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dalemusser/npoconnect/internal/app/dataset"
	"github.com/dalemusser/npoconnect/internal/app/system/aiclient"
	"github.com/dalemusser/npoconnect/internal/app/system/aiclient/aiclienttest"
	"github.com/dalemusser/npoconnect/internal/app/system/debounce/debouncetest"
	"github.com/dalemusser/npoconnect/internal/app/system/directory"
	"github.com/dalemusser/npoconnect/internal/app/system/generation"
	"github.com/dalemusser/npoconnect/internal/domain/models"
)

func testOrgs(t *testing.T) *dataset.Provider {
	t.Helper()
	p, err := dataset.New([]models.Organization{
		{ID: 1, Name: "Green Future Trust", City: "Soweto", Sector: "Environment", DateRegistered: "2015-06-01",
			BankingDetails: &models.BankingDetails{BankName: "Absa", AccountHolder: "Green Future Trust", AccountNumber: "4071", BranchCode: "632005", AccountType: "Cheque"}},
		{ID: 2, Name: "Evergreen Kids", City: "Pretoria", Sector: "Education", DateRegistered: "2018-02-11"},
		{ID: 3, Name: "Blue Sky Foundation", City: "Soweto", Sector: "Health", DateRegistered: "2015-09-30"},
	})
	require.NoError(t, err)
	return p
}

// execute runs npoctl with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPrintViewTable(t *testing.T) {
	v := directory.BuildView(testOrgs(t).All(), directory.FilterState{City: "Soweto"}, 1, 6, directory.ViewTable)

	var buf bytes.Buffer
	require.NoError(t, printView(&buf, v))
	out := buf.String()

	require.Contains(t, out, "ID  NAME")
	require.Contains(t, out, "Green Future Trust")
	require.Contains(t, out, "Blue Sky Foundation")
	require.NotContains(t, out, "Evergreen")
	require.Contains(t, out, "Showing 2 of 2 results")
	require.NotContains(t, out, "Page 1 of")
}

func TestPrintViewEmpty(t *testing.T) {
	v := directory.BuildView(testOrgs(t).All(), directory.FilterState{City: "Atlantis"}, 1, 6, directory.ViewCard)

	var buf bytes.Buffer
	require.NoError(t, printView(&buf, v))
	require.Equal(t, "No organizations match your criteria.\n", buf.String())
}

func TestPrintViewCardsWithPaging(t *testing.T) {
	v := directory.BuildView(testOrgs(t).All(), directory.FilterState{}, 2, 2, directory.ViewCard)

	var buf bytes.Buffer
	require.NoError(t, printView(&buf, v))
	require.Contains(t, buf.String(), "[3] Blue Sky Foundation\n    Health | Soweto\n")
	require.Contains(t, buf.String(), "Showing 1 of 3 results\nPage 2 of 2\n")
}

func TestPrintOrganizationShowsBanking(t *testing.T) {
	o, _ := testOrgs(t).ByID(1)
	var buf bytes.Buffer
	printOrganization(&buf, o)

	require.True(t, strings.HasPrefix(buf.String(), "Green Future Trust\n==================\n"))
	require.Contains(t, buf.String(), "Banking details")
	require.Contains(t, buf.String(), "Branch Code:")
}

func TestBrowserDebouncesName(t *testing.T) {
	clock := debouncetest.NewClock()
	var buf bytes.Buffer
	b := newBrowser(testOrgs(t), &buf, directory.WithClock(clock))
	defer b.Close()

	for _, s := range []string{"name g", "name gr", "name green"} {
		require.NoError(t, b.exec(s))
	}
	require.Empty(t, buf.String(), "nothing is rendered before the quiet period")

	clock.Advance(directory.DefaultNameDelay)
	out := buf.String()
	require.Contains(t, out, `name="green"`)
	require.Contains(t, out, "Green Future Trust")
	require.Contains(t, out, "Evergreen Kids")
	require.NotContains(t, out, "Blue Sky")
}

func TestBrowserCommands(t *testing.T) {
	var buf bytes.Buffer
	b := newBrowser(testOrgs(t), &buf, directory.WithClock(debouncetest.NewClock()), directory.WithPageSize(1))
	defer b.Close()

	require.NoError(t, b.exec("city Soweto"))
	require.Contains(t, buf.String(), "Showing 1 of 2 results")

	require.NoError(t, b.exec("next"))
	require.Equal(t, 2, b.page.Snapshot().Page)
	require.Error(t, b.exec("next"))

	require.NoError(t, b.exec("view table"))
	require.Equal(t, directory.ViewTable, b.page.Snapshot().Mode)

	require.NoError(t, b.exec("  "))
	require.Error(t, b.exec("page zero"))
	require.Error(t, b.exec("show 42"))
	require.EqualError(t, b.exec("fly away"), `unknown command "fly"`)
	require.ErrorIs(t, b.exec("quit"), errQuit)
}

func TestBrowserRunStopsAtQuit(t *testing.T) {
	var buf bytes.Buffer
	b := newBrowser(testOrgs(t), &buf, directory.WithClock(debouncetest.NewClock()))
	defer b.Close()

	require.NoError(t, b.Run(strings.NewReader("sector Health\nbogus\nquit\nsector Education\n")))
	out := buf.String()
	require.Contains(t, out, "Blue Sky Foundation")
	require.Contains(t, out, `error: unknown command "bogus"`)
	require.Equal(t, directory.FilterState{Sector: "Health"}, b.page.Filters())
}

func TestReadPayload(t *testing.T) {
	req, err := readPayload(strings.NewReader("npoMission: Trees\nfundingNeeds: R50 000\nregion: Soweto\n"), "-", &generation.DonorMatchData{})
	require.NoError(t, err)
	require.Equal(t, &generation.DonorMatchData{NpoMission: "Trees", FundingNeeds: "R50 000", Region: "Soweto"}, req)

	_, err = readPayload(strings.NewReader("mission: Trees\n"), "-", &generation.DonorMatchData{})
	require.ErrorContains(t, err, "parsing payload")

	_, err = readPayload(nil, filepath.Join(t.TempDir(), "missing.yaml"), &generation.DonorMatchData{})
	require.ErrorContains(t, err, "opening payload")
}

func TestGenerateCommandExports(t *testing.T) {
	client := &aiclienttest.Client{Response: aiclient.Response{
		Text: "## Donors\nTry the **Lotto** fund.",
		GroundingChunks: []aiclient.GroundingChunk{
			{Web: &aiclient.WebRef{URI: "https://nlcsa.org.za", Title: "NLC"}},
		},
	}}
	prev := newClient
	newClient = func(context.Context, string, string) (aiclient.Client, error) { return client, nil }
	t.Cleanup(func() { newClient = prev })
	viper.Set("api_key", "test-key")
	t.Cleanup(func() { viper.Set("api_key", "") })

	dir := t.TempDir()
	payload := filepath.Join(dir, "donors.yaml")
	require.NoError(t, os.WriteFile(payload, []byte("npoMission: Trees\nfundingNeeds: R50 000\nregion: Soweto\n"), 0o600))

	out, err := execute(t, "generate", "donors", "--file", payload, "--out", dir, "--format", "markdown")
	require.NoError(t, err)
	require.Contains(t, out, "Donors\nTry the Lotto fund.")
	require.Contains(t, out, "1. NLC <https://nlcsa.org.za>")

	saved, err := os.ReadFile(filepath.Join(dir, "Donor-Match-npo-connect.md"))
	require.NoError(t, err)
	require.Equal(t, "# Donor Match\n\n## Donors\nTry the **Lotto** fund.\n", string(saved))

	require.Len(t, client.Requests, 1)
	require.True(t, client.Requests[0].WebSearch)
}

func TestGenerateWithoutKey(t *testing.T) {
	t.Setenv(apiKeyEnv, "")
	viper.Set("api_key", "")

	_, err := newOrchestrator(context.Background(), zap.NewNop())
	require.ErrorIs(t, err, generation.ErrNotConfigured)
}

func TestRunChatStreams(t *testing.T) {
	client := &aiclienttest.Client{Chunks: []string{"Start ", "with a budget."}}
	sess := generation.New(client, "m", zap.NewNop()).NewChatSession(context.Background())

	var out bytes.Buffer
	require.NoError(t, runChat(context.Background(), sess, strings.NewReader("How do I fundraise?\n\n/quit\nignored\n"), &out))

	require.Contains(t, out.String(), "assistant> "+generation.GreetingMessage+"\n")
	require.Contains(t, out.String(), "you> assistant> Start with a budget.\n")
	require.Equal(t, []string{"How do I fundraise?"}, client.Messages)
}

func TestRunChatStreamFailure(t *testing.T) {
	client := &aiclienttest.Client{Chunks: []string{"Par"}, StreamErr: errors.New("reset")}
	sess := generation.New(client, "m", zap.NewNop()).NewChatSession(context.Background())

	var out bytes.Buffer
	require.NoError(t, runChat(context.Background(), sess, strings.NewReader("hi\n"), &out))
	require.Contains(t, out.String(), "assistant> Par\n"+generation.StreamErrorMessage+"\n")
}

func TestRunChatUnavailable(t *testing.T) {
	sess := generation.New(nil, "", zap.NewNop()).NewChatSession(context.Background())

	var out bytes.Buffer
	err := runChat(context.Background(), sess, strings.NewReader("hi\n"), &out)
	require.ErrorIs(t, err, generation.ErrChatUnavailable)
	require.Contains(t, out.String(), generation.InitErrorMessage)
}

func TestTasksCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tasks.db")

	out, err := execute(t, "tasks", "list", "--tasks-db", db)
	require.NoError(t, err)
	require.Equal(t, "No tasks yet.\n", out)

	_, err = execute(t, "tasks", "add", "Board meeting", "2026-12-01", "--tasks-db", db, "--type", "task")
	require.NoError(t, err)
	out, err = execute(t, "tasks", "add", "Lotto grant", "2026-11-15", "--tasks-db", db, "--type", "grant")
	require.NoError(t, err)
	require.Contains(t, out, "Added grant")

	out, err = execute(t, "tasks", "list", "--tasks-db", db)
	require.NoError(t, err)
	require.Less(t, strings.Index(out, "Lotto grant"), strings.Index(out, "Board meeting"), "earliest due date first")

	_, err = execute(t, "tasks", "add", "", "2026-11-15", "--tasks-db", db, "--type", "task")
	require.Error(t, err)

	_, err = execute(t, "tasks", "rm", "12345", "--tasks-db", db)
	require.Error(t, err)
}
