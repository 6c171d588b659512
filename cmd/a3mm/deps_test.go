package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missionPage = `<html><body>
<div class="requiredItemsContainer" id="RequiredItems">
	<a href="https://steamcommunity.com/workshop/filedetails/?id=450814997"><div class="requiredItem">CBA_A3</div></a>
	<a href="https://steamcommunity.com/workshop/filedetails/?id=463939057"><div class="requiredItem">ace</div></a>
	<a href="https://steamcommunity.com/workshop/filedetails/?id=333310405"><div class="requiredItem">Enhanced Movement</div></a>
</div>
</body></html>`

// workshopServer serves missionPage and counts requests
func workshopServer(t *testing.T) *atomic.Int32 {
	t.Helper()
	hits := new(atomic.Int32)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("id") == "" {
			http.Error(w, "missing id", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, missionPage)
	}))
	t.Cleanup(server.Close)
	t.Setenv("A3MM_WORKSHOP_URL", server.URL+"/sharedfiles/filedetails/")
	return hits
}

func TestDeps(t *testing.T) {
	f := newCLIFixture(t)
	hits := workshopServer(t)

	out, err := execute(t, "--config", f.configFile, "deps", "843577117")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Regexp(t, `450814997\s+\S.*enabled`, out)
	assert.Regexp(t, `463939057\s+\S.*disabled`, out)
	assert.Regexp(t, `333310405\s+Enhanced Movement\s+missing`, out)
	assert.Equal(t, int32(1), hits.Load())

	// Second lookup is served from the cache
	_, err = execute(t, "--config", f.configFile, "deps", "843577117")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	_, err = execute(t, "--config", f.configFile, "deps", "843577117", "--refresh")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())

	out, err = execute(t, "--config", f.configFile, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared dependency cache")

	_, err = execute(t, "--config", f.configFile, "deps", "843577117")
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
}

func TestDeps_ServerError(t *testing.T) {
	f := newCLIFixture(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)
	t.Setenv("A3MM_WORKSHOP_URL", server.URL+"/")

	_, err := execute(t, "--config", f.configFile, "deps", "843577117")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "looking up dependencies")
}

func TestDeps_NotConfigured(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "deps", "843577117")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not set up")
}
