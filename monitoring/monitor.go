// Package monitoring turns a running world into a web server so that towers
// can be inspected and the engine paused from a browser.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/distill/monitoring/web"
	"github.com/sarchlab/distill/sim"
	"github.com/sarchlab/distill/tower"
	"github.com/sarchlab/distill/world"
)

// Monitor can turn a simulation into a server and allows external monitoring
// controlling of the simulation.
type Monitor struct {
	engine     sim.Engine
	world      *world.World
	portNumber int
	port       int
	events     *eventHub

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		events: newEventHub(),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine that is used in the simulation.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
}

// RegisterWorld registers the world to be monitored. The monitor hooks into
// every tower of the world to stream distillation events.
func (m *Monitor) RegisterWorld(w *world.World) {
	m.world = w
	w.AcceptHook(m)
	w.AcceptTowerHook(m)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        sim.GetIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/towers", m.listTowers)
	r.HandleFunc("/api/tower/{x:-?[0-9]+}/{y:-?[0-9]+}/{z:-?[0-9]+}",
		m.towerDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.HandleFunc("/api/events", m.events.serveWS)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server with a custom port if wanted.
func (m *Monitor) StartServer() {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.port = listener.Addr().(*net.TCPAddr).Port

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.URL())

	server := &http.Server{
		Handler:           m.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := server.Serve(listener)
		dieOnErr(err)
	}()
}

// URL returns the address of the web page. It is empty before the server
// starts.
func (m *Monitor) URL() string {
	if m.port == 0 {
		return ""
	}

	return fmt.Sprintf("http://localhost:%d", m.port)
}

// OpenInBrowser opens the web page in the default browser.
func (m *Monitor) OpenInBrowser() error {
	if m.port == 0 {
		return fmt.Errorf("monitoring server is not started")
	}

	return browser.OpenURL(m.URL())
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	now := m.engine.CurrentTime()
	fmt.Fprintf(w, "{\"now\":%d}", now)
}

type towerRsp struct {
	Controller tower.Pos `json:"controller"`
	Height     int       `json:"height"`
	Recipe     string    `json:"recipe,omitempty"`
	Remaining  int       `json:"remaining_ticks"`
	LastResult string    `json:"last_result,omitempty"`
}

func summarize(t *tower.Tower) towerRsp {
	rsp := towerRsp{
		Controller: t.ControllerPos(),
		Height:     t.Height(),
		Remaining:  t.RemainingTicks(),
	}

	if r := t.LastRecipe(); r != nil {
		rsp.Recipe = r.ID
	}

	if res := t.LastResult(); res.OK || res.Reason != tower.Distilled {
		rsp.LastResult = res.Reason.String()
	}

	return rsp
}

func (m *Monitor) listTowers(w http.ResponseWriter, _ *http.Request) {
	var rsp []towerRsp

	m.world.View(func(v world.Viewer) {
		towers := v.Towers()

		rsp = make([]towerRsp, 0, len(towers))
		for _, t := range towers {
			rsp = append(rsp, summarize(t))
		}
	})

	writeJSON(w, rsp)
}

func (m *Monitor) towerDetails(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	pos, err := parsePos(vars["x"], vars["y"], vars["z"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	m.serializeTower(w, pos, nil)
}

type fieldReq struct {
	Tower     string `json:"tower,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	coords := strings.Split(req.Tower, ",")
	if len(coords) != 3 {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: tower must be given as x,y,z")
		return
	}

	pos, err := parsePos(coords[0], coords[1], coords[2])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	m.serializeTower(w, pos, strings.Split(req.FieldName, "."))
}

// serializeTower walks the tower at pos with the world locked and writes the
// result once the lock is released. A nil entry point serializes the whole
// tower.
func (m *Monitor) serializeTower(
	w http.ResponseWriter,
	pos tower.Pos,
	entryPoint []string,
) {
	var (
		buf    bytes.Buffer
		status = http.StatusOK
	)

	m.world.View(func(v world.Viewer) {
		t, ok := v.TowerAt(pos)
		if !ok {
			status = http.StatusNotFound
			buf.WriteString("Tower not found")

			return
		}

		serializer := goseth.NewSerializer()
		serializer.SetRoot(t)
		serializer.SetMaxDepth(1)

		if entryPoint != nil {
			if err := serializer.SetEntryPoint(entryPoint); err != nil {
				status = http.StatusBadRequest
				fmt.Fprintf(&buf, "Error: %s", err)

				return
			}
		}

		dieOnErr(serializer.Serialize(&buf))
	})

	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	_, err := w.Write(buf.Bytes())
	dieOnErr(err)
}

func parsePos(x, y, z string) (tower.Pos, error) {
	var (
		pos tower.Pos
		err error
	)

	for _, c := range []struct {
		s   string
		dst *int
	}{{x, &pos.X}, {y, &pos.Y}, {z, &pos.Z}} {
		*c.dst, err = strconv.Atoi(strings.TrimSpace(c.s))
		if err != nil {
			return tower.Pos{}, err
		}
	}

	return pos, nil
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	writeJSON(w, m.progressBars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
