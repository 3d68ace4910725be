package vizio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownApp is returned when an app name matches nothing in the table.
// No request is sent in that case.
var ErrUnknownApp = errors.New("unknown app")

// App describes a launchable SmartCast app. Names are matched
// case-insensitively.
type App struct {
	Name      string `yaml:"name"`
	Namespace int    `yaml:"namespace"`
	AppID     string `yaml:"app_id"`
	Message   string `yaml:"message,omitempty"`
}

// AppTable is a swappable name -> descriptor lookup, so new apps can be
// added without touching dispatch logic
type AppTable struct {
	apps map[string]App
}

// NewAppTable builds a table from descriptors, keyed by lowercased name
func NewAppTable(apps []App) *AppTable {
	t := &AppTable{apps: make(map[string]App, len(apps))}
	for _, app := range apps {
		t.apps[strings.ToLower(app.Name)] = app
	}
	return t
}

// DefaultApps returns the built-in table, current as of 2026 firmware
func DefaultApps() *AppTable {
	return NewAppTable([]App{
		{Name: "Netflix", Namespace: 3, AppID: "1"},
		{Name: "YouTube", Namespace: 5, AppID: "1"},
		{Name: "Acorn TV", Namespace: 4, AppID: "74", Message: "https://app.rlje.net/vizio/index.html"},
		{Name: "WatchFree", Namespace: 4, AppID: "3014", Message: "http://127.0.0.1:12345/scfs/sctv/main.html#/watchfreeplus"},
		{Name: "Tubi", Namespace: 4, AppID: "61", Message: "https://ott-vizio.tubitv.com/?utm_source=AppRow&tracking=AppRow"},
		{Name: "Free Movies", Namespace: 4, AppID: "331", Message: "https://fmplus.unreel.me/tv/vizio"},
		{Name: "XUMO", Namespace: 4, AppID: "62", Message: "https://xfinity-kabletown-app.xumo.com/prod/index.html?partner=smartcast"},
		{Name: "Action", Namespace: 4, AppID: "298", Message: "https://vizio-prod.ottstudio.plus/vizio-apps/action"},
		{Name: "The Archive", Namespace: 4, AppID: "577", Message: "https://blueprint.matchpoint.tv/thearchive/"},
	})
}

// LoadAppTable reads extra app descriptors from a YAML file and overlays
// them on the built-in table. Entries with a name already present replace
// the built-in descriptor.
func LoadAppTable(path string) (*AppTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read app table: %w", err)
	}

	var extra []App
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse app table: %w", err)
	}

	table := DefaultApps()
	for i, app := range extra {
		if app.Name == "" {
			return nil, fmt.Errorf("app table entry %d: name is required", i)
		}
		if app.AppID == "" {
			return nil, fmt.Errorf("app table entry %d (%s): app_id is required", i, app.Name)
		}
		table.apps[strings.ToLower(app.Name)] = app
	}
	return table, nil
}

// Lookup resolves an app name case-insensitively
func (t *AppTable) Lookup(name string) (App, bool) {
	app, ok := t.apps[strings.ToLower(name)]
	return app, ok
}

// Apps returns all descriptors sorted by name
func (t *AppTable) Apps() []App {
	apps := make([]App, 0, len(t.apps))
	for _, app := range t.apps {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })
	return apps
}

// appLaunchValue is the /app/launch request payload. The TV rejects a null
// MESSAGE; firmware wants the literal string "None" when no URL applies.
type appLaunchValue struct {
	AppID     string `json:"APP_ID"`
	Namespace int    `json:"NAME_SPACE"`
	Message   string `json:"MESSAGE"`
}

// RunningApp is what /app/current reports
type RunningApp struct {
	AppID     string `json:"APP_ID"`
	Namespace int    `json:"NAME_SPACE"`
	Message   string `json:"MESSAGE"`
}

// LaunchApp resolves the named app and asks the TV to start it
func (c *Client) LaunchApp(ctx context.Context, name string) (*Result, error) {
	app, ok := c.apps.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownApp, name)
	}

	message := app.Message
	if message == "" {
		message = "None"
	}

	payload := map[string]appLaunchValue{
		"VALUE": {
			AppID:     app.AppID,
			Namespace: app.Namespace,
			Message:   message,
		},
	}

	res, _, err := c.do(ctx, http.MethodPut, "/app/launch", payload, true)
	return res, err
}

// CurrentApp reports the app the TV is running right now
func (c *Client) CurrentApp(ctx context.Context) (*RunningApp, error) {
	res, env, err := c.do(ctx, http.MethodGet, "/app/current", nil, true)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("current app query failed: %s", res.Describe())
	}

	var it struct {
		Value RunningApp `json:"VALUE"`
	}
	if err := json.Unmarshal(env.Item, &it); err != nil {
		return nil, fmt.Errorf("unexpected current app response: %w", err)
	}
	return &it.Value, nil
}
