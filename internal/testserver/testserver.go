// Package testserver wires the full stack against a replayed backend for
// end-to-end tests: replay router, backend client, session store with a
// sqlite journal, and the MCP server over streamable HTTP.
package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oneclickai/opsdeck/internal/backend"
	"github.com/oneclickai/opsdeck/internal/domain/activity"
	"github.com/oneclickai/opsdeck/internal/domain/session"
	"github.com/oneclickai/opsdeck/internal/mcp"
	"github.com/oneclickai/opsdeck/internal/replay"
	"github.com/oneclickai/opsdeck/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Backend *httptest.Server
	MCP     *httptest.Server
	DB      *sqlite.DB
	Client  *backend.Client
	Store   *session.Store
	Session *sdkmcp.ClientSession
}

// New starts a replay backend serving recording and connects an MCP client
// to a server fronting it.
func New(t *testing.T, recording string) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec, err := replay.LoadRecording(strings.NewReader(recording))
	require.NoError(t, err)
	backendSrv := httptest.NewServer(replay.NewRouter(replay.Options{Recording: rec, ChunkSize: 64, Agents: 5}))

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	client := backend.NewClient(backend.Options{BaseURL: backendSrv.URL, ChunkTimeout: 5 * time.Second}, nil)
	journal := activity.NewService(sqlite.NewActivityRepository(db), nil)
	store := session.NewStore(client, session.WithJournal(journal), session.WithRunTimeout(30*time.Second))

	server := mcp.NewServer(mcp.Config{Sessions: store, Backend: client, Version: "test"})
	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server { return server }, nil)
	mcpSrv := httptest.NewServer(handler)

	ctx := context.Background()
	mcpClient := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := mcpClient.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: mcpSrv.URL}, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = cs.Close()
		mcpSrv.Close()
		_ = store.Close()
		backendSrv.Close()
		_ = db.Close()
	})

	return &TestServer{
		Backend: backendSrv,
		MCP:     mcpSrv,
		DB:      db,
		Client:  client,
		Store:   store,
		Session: cs,
	}
}

// CallTool invokes name and returns the text of its first content block.
func (ts *TestServer) CallTool(t *testing.T, name string, args map[string]any) (string, bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	res, err := ts.Session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, name)
	require.NotEmpty(t, res.Content, name)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, name)
	return text.Text, res.IsError
}
