package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sheetsync/sheetsync/internal/auth"
	"github.com/sheetsync/sheetsync/internal/config"
	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/services/expiry"
	"github.com/sheetsync/sheetsync/internal/services/inventory"
	"github.com/sheetsync/sheetsync/internal/services/notifications"
	"github.com/sheetsync/sheetsync/internal/tui/components"
	"github.com/sheetsync/sheetsync/internal/tui/views/dashboard"
	invviews "github.com/sheetsync/sheetsync/internal/tui/views/inventory"
	alertviews "github.com/sheetsync/sheetsync/internal/tui/views/notifications"
	"golang.org/x/sync/errgroup"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Screen is a top-level screen of the application.
type Screen string

const (
	ScreenLogin         Screen = "login"
	ScreenDashboard     Screen = "dashboard"
	ScreenInventory     Screen = "inventory"
	ScreenNotifications Screen = "notifications"
	ScreenHelp          Screen = "help"
)

// Deps are the services the application drives.
type Deps struct {
	Inventory     *inventory.Service
	Notifications *notifications.Service
	// Changelog is optional; nil never shows the what's-new dialog.
	Changelog *notifications.ChangelogTracker
	// Gate is optional; a nil or disabled gate skips the login screen.
	Gate   *auth.Gate
	Config *config.Config
}

// App is the main Bubble Tea application model.
type App struct {
	ctx context.Context

	// Dependencies
	config       *config.Config
	inventorySvc *inventory.Service
	notifySvc    *notifications.Service
	changelog    *notifications.ChangelogTracker
	gate         *auth.Gate
	classifier   expiry.Classifier

	// Views
	dashboardView *dashboard.View
	inventoryView *invviews.View
	alertsView    *alertviews.View
	addForm       *invviews.AddForm
	passphrase    *components.Input

	// UI state
	theme       *Theme
	styles      components.Styles
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool

	// Current screen
	screen         Screen
	previousScreen Screen
	showForm       bool
	searchMode     bool
	confirmDelete  *models.InventoryEntry
	changelogOpen  bool
	unlocking      bool
	loginErr       string

	// Data from the last refresh
	entries []models.InventoryEntry
	loaded  bool

	// Alerts
	alerts []Alert
}

// Alert represents a status bar message.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertCritical
)

// tickMsg is sent periodically so expiry labels follow the calendar.
type tickMsg time.Time

type dataLoadedMsg struct {
	entries []models.InventoryEntry
	err     error
}

type changelogMsg struct {
	show bool
	err  error
}

type changelogSeenMsg struct {
	err error
}

type unlockMsg struct {
	err error
}

type productLookupMsg struct {
	barcode string
	product *models.Product
	err     error
}

type productCreatedMsg struct {
	product *models.Product
	err     error
}

type entryAddedMsg struct {
	entry *models.InventoryEntry
	err   error
}

type entryDeletedMsg struct {
	entry models.InventoryEntry
	err   error
}

type dismissedMsg struct {
	count int
	err   error
}

// New creates a new App instance.
func New(deps Deps) *App {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}

	classifier := expiry.NewClassifier(cfg.Expiry.ExpiringSoonWindowDays)
	theme := NewTheme(cfg.Display.ColorScheme)
	styles := theme.Styles()

	dash := dashboard.New(classifier, cfg.Expiry.AttentionLimit, cfg.Display.DateFormat)
	dash.SetStyles(styles)

	inv := invviews.New(classifier, cfg.Display.DateFormat)
	inv.SetStyles(styles)

	alerts := alertviews.New()
	alerts.SetStyles(styles)

	passphrase := components.NewInput("Passphrase").
		SetMask('•').
		SetWidth(24).
		SetMaxLength(128).
		SetStyles(styles)
	passphrase.Focus(true)

	screen := ScreenDashboard
	if deps.Gate.Enabled() {
		screen = ScreenLogin
	}

	return &App{
		ctx:           context.Background(),
		config:        cfg,
		inventorySvc:  deps.Inventory,
		notifySvc:     deps.Notifications,
		changelog:     deps.Changelog,
		gate:          deps.Gate,
		classifier:    classifier,
		dashboardView: dash,
		inventoryView: inv,
		alertsView:    alerts,
		passphrase:    passphrase,
		theme:         theme,
		styles:        styles,
		keys:          DefaultKeyMap(),
		screen:        screen,
		alerts:        []Alert{},
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		a.refresh(),
		a.checkChangelog(),
	)
}

// tickCmd returns a command that sends tick messages.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// today is the reference date every expiry view is computed against.
func (a *App) today() time.Time {
	if ref, ok := a.config.Expiry.ReferenceTime(); ok {
		return ref
	}
	return a.inventorySvc.Today()
}

// refresh loads the entries and the viewed set concurrently.
func (a *App) refresh() tea.Cmd {
	ctx := a.ctx
	svc := a.inventorySvc
	viewed := a.notifySvc.Viewed()

	return func() tea.Msg {
		var entries []models.InventoryEntry

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			entries, err = svc.List(gctx)
			return err
		})
		g.Go(func() error {
			return viewed.Load(gctx)
		})

		if err := g.Wait(); err != nil {
			return dataLoadedMsg{err: err}
		}
		return dataLoadedMsg{entries: entries}
	}
}

func (a *App) checkChangelog() tea.Cmd {
	if a.changelog == nil {
		return nil
	}
	ctx, tracker := a.ctx, a.changelog
	return func() tea.Msg {
		show, err := tracker.ShouldShow(ctx)
		return changelogMsg{show: show, err: err}
	}
}

func (a *App) markChangelogSeen() tea.Cmd {
	if a.changelog == nil {
		return nil
	}
	ctx, tracker := a.ctx, a.changelog
	return func() tea.Msg {
		return changelogSeenMsg{err: tracker.MarkSeen(ctx)}
	}
}

func (a *App) unlock(pass string) tea.Cmd {
	gate := a.gate
	return func() tea.Msg {
		return unlockMsg{err: gate.Verify(pass)}
	}
}

func (a *App) lookupBarcode(barcode string) tea.Cmd {
	ctx, svc := a.ctx, a.inventorySvc
	return func() tea.Msg {
		p, err := svc.LookupBarcode(ctx, barcode)
		return productLookupMsg{barcode: barcode, product: p, err: err}
	}
}

func (a *App) createProduct(barcode, name string) tea.Cmd {
	ctx, svc := a.ctx, a.inventorySvc
	return func() tea.Msg {
		p, err := svc.CreateProduct(ctx, barcode, name)
		return productCreatedMsg{product: p, err: err}
	}
}

func (a *App) addEntry(input inventory.AddEntryInput) tea.Cmd {
	ctx, svc := a.ctx, a.inventorySvc
	return func() tea.Msg {
		e, err := svc.AddEntry(ctx, input)
		return entryAddedMsg{entry: e, err: err}
	}
}

func (a *App) deleteEntry(entry models.InventoryEntry) tea.Cmd {
	ctx, svc := a.ctx, a.inventorySvc
	return func() tea.Msg {
		return entryDeletedMsg{entry: entry, err: svc.DeleteEntry(ctx, entry.ID)}
	}
}

func (a *App) dismiss(id string) tea.Cmd {
	ctx, svc := a.ctx, a.notifySvc
	return func() tea.Msg {
		return dismissedMsg{count: 1, err: svc.Dismiss(ctx, id)}
	}
}

func (a *App) dismissAll() tea.Cmd {
	ctx, svc := a.ctx, a.notifySvc
	entries, ref := a.entries, a.today()
	count := a.alertsView.Len()
	return func() tea.Msg {
		return dismissedMsg{count: count, err: svc.DismissAll(ctx, entries, ref)}
	}
}

// applyData recomputes every view from the loaded entries.
func (a *App) applyData() {
	ref := a.today()
	groups := a.classifier.GroupByProduct(a.entries, ref)

	a.dashboardView.SetData(a.entries, groups, ref)
	a.inventoryView.SetGroups(groups, ref)
	a.alertsView.SetItems(a.notifySvc.Feed(a.entries, ref))
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.updateViewDimensions()
		return a, nil

	case tickMsg:
		if a.loaded {
			a.applyData()
		}
		return a, tickCmd()

	case dataLoadedMsg:
		if msg.err != nil {
			slog.Error("refreshing inventory", "error", msg.err)
			a.inventoryView.SetError(msg.err)
			a.AddAlert(AlertWarning, "Failed to load inventory: "+msg.err.Error())
			return a, nil
		}
		a.entries = msg.entries
		a.loaded = true
		a.applyData()
		return a, nil

	case changelogMsg:
		if msg.err != nil {
			slog.Warn("checking changelog version", "error", msg.err)
			return a, nil
		}
		a.changelogOpen = msg.show
		return a, nil

	case changelogSeenMsg:
		if msg.err != nil {
			slog.Warn("saving changelog version", "error", msg.err)
		}
		return a, nil

	case unlockMsg:
		a.unlocking = false
		a.passphrase.SetValue("")
		if msg.err != nil {
			slog.Warn("unlock failed")
			a.loginErr = "Incorrect passphrase."
			return a, nil
		}
		slog.Info("unlocked")
		a.loginErr = ""
		a.screen = ScreenDashboard
		return a, nil

	case productLookupMsg:
		if a.addForm == nil || msg.barcode != a.addForm.Barcode() {
			return a, nil
		}
		switch {
		case errors.Is(msg.err, models.ErrProductNotFound):
			a.addForm.SetNotFound()
		case msg.err != nil:
			a.addForm.SetFieldErrors(msg.err)
		default:
			a.addForm.SetProduct(msg.product)
		}
		return a, nil

	case productCreatedMsg:
		if a.addForm == nil {
			return a, nil
		}
		if msg.err != nil {
			a.addForm.SetFieldErrors(msg.err)
			return a, nil
		}
		a.addForm.SetProduct(msg.product)
		a.AddAlert(AlertInfo, fmt.Sprintf("%q has been added to your database.", msg.product.Name))
		return a, nil

	case entryAddedMsg:
		if msg.err != nil {
			if a.addForm != nil {
				a.addForm.SetFieldErrors(msg.err)
			}
			return a, nil
		}
		a.showForm = false
		a.addForm = nil
		a.AddAlert(AlertInfo, fmt.Sprintf("%d item(s) added successfully.", msg.entry.Quantity))
		return a, a.refresh()

	case entryDeletedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to delete item: "+msg.err.Error())
			return a, nil
		}
		a.AddAlert(AlertInfo, fmt.Sprintf("%q has been deleted.", msg.entry.Name))
		return a, a.refresh()

	case dismissedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to dismiss alert: "+msg.err.Error())
			return a, nil
		}
		a.applyData()
		return a, nil
	}

	return a, nil
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle quit confirmation first (modal takes priority)
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
			return a, nil
		}
		return a, nil
	}

	if msg.String() == "ctrl+c" {
		a.showConfirm = true
		return a, nil
	}

	if a.screen == ScreenLogin {
		return a.handleLoginKeys(msg)
	}

	if a.changelogOpen {
		switch msg.String() {
		case "enter", "esc", " ":
			a.changelogOpen = false
			return a, a.markChangelogSeen()
		}
		return a, nil
	}

	if a.confirmDelete != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			entry := *a.confirmDelete
			a.confirmDelete = nil
			return a, a.deleteEntry(entry)
		case "n", "N", "esc":
			a.confirmDelete = nil
		}
		return a, nil
	}

	// Handle form mode BEFORE global keys - form needs all input
	if a.showForm && a.addForm != nil {
		return a.handleFormKeys(msg)
	}

	// Handle search mode BEFORE global keys - search needs text input
	if a.searchMode {
		return a.handleSearchKeys(msg)
	}

	// Global key bindings (only when not in input mode)
	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	if a.keys.IsFunctionKey(msg) {
		next := a.keys.FunctionKeyScreen(msg)
		if next == ScreenHelp {
			if a.screen != ScreenHelp {
				a.previousScreen = a.screen
			}
		} else {
			a.previousScreen = ""
		}
		a.screen = next
		return a, nil
	}

	if a.keys.Back.Matches(msg) {
		switch {
		case a.screen == ScreenHelp && a.previousScreen != "":
			a.screen = a.previousScreen
			a.previousScreen = ""
		case a.screen == ScreenInventory && a.inventoryView.Query() != "":
			a.inventoryView.SetQuery("")
		case a.screen == ScreenNotifications:
			a.screen = ScreenDashboard
		}
		return a, nil
	}

	switch a.screen {
	case ScreenDashboard:
		return a.handleDashboardKeys(msg)
	case ScreenInventory:
		return a.handleInventoryKeys(msg)
	case ScreenNotifications:
		return a.handleNotificationKeys(msg)
	}

	return a, nil
}

// handleLoginKeys handles key presses on the unlock screen.
func (a *App) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.unlocking {
		return a, nil
	}

	switch msg.String() {
	case "enter":
		if a.passphrase.Value() == "" {
			a.loginErr = "Please enter your passphrase."
			return a, nil
		}
		a.unlocking = true
		a.loginErr = ""
		return a, a.unlock(a.passphrase.Value())
	case "esc":
		a.passphrase.SetValue("")
		a.loginErr = ""
	case "f10":
		a.showConfirm = true
	default:
		a.passphrase.HandleKey(msg.String())
	}
	return a, nil
}

func (a *App) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return a, a.refresh()
	case "enter":
		a.screen = ScreenInventory
	}
	return a, nil
}

func (a *App) handleInventoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case a.keys.Up.Matches(msg):
		a.inventoryView.MoveUp()
	case a.keys.Down.Matches(msg):
		a.inventoryView.MoveDown()
	case a.keys.PageUp.Matches(msg):
		a.inventoryView.PageUp()
	case a.keys.PageDown.Matches(msg):
		a.inventoryView.PageDown()
	case a.keys.Home.Matches(msg):
		a.inventoryView.GoToTop()
	case a.keys.End.Matches(msg):
		a.inventoryView.GoToBottom()
	case a.keys.Select.Matches(msg):
		a.inventoryView.Toggle()
	case a.keys.Search.Matches(msg):
		a.searchMode = true
	default:
		switch msg.String() {
		case "a":
			a.addForm = invviews.NewAddForm(a.styles)
			a.showForm = true
		case "d", "delete":
			if e := a.inventoryView.SelectedEntry(); e != nil {
				entry := *e
				a.confirmDelete = &entry
			} else if a.inventoryView.SelectedGroup() != nil {
				a.AddAlert(AlertInfo, "Expand the product and select a batch to delete.")
			}
		case "r":
			return a, a.refresh()
		}
	}
	return a, nil
}

// handleFormKeys handles key presses in form mode.
func (a *App) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.addForm.HandleKey(msg.String()) {
	case invviews.ActionCancel:
		a.showForm = false
		a.addForm = nil
	case invviews.ActionLookup:
		return a, a.lookupBarcode(a.addForm.Barcode())
	case invviews.ActionCreateProduct:
		return a, a.createProduct(a.addForm.Barcode(), a.addForm.NewProductName())
	case invviews.ActionSubmit:
		return a, a.addEntry(a.addForm.Input())
	}
	return a, nil
}

// handleSearchKeys handles key presses in search mode.
func (a *App) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	query := a.inventoryView.Query()

	switch msg.String() {
	case "esc":
		a.searchMode = false
		a.inventoryView.SetQuery("")
	case "enter":
		a.searchMode = false
	case "backspace":
		if len(query) > 0 {
			runes := []rune(query)
			a.inventoryView.SetQuery(string(runes[:len(runes)-1]))
		}
	case "space", " ":
		a.inventoryView.SetQuery(query + " ")
	default:
		if msg.Type == tea.KeyRunes {
			a.inventoryView.SetQuery(query + string(msg.Runes))
		}
	}
	return a, nil
}

func (a *App) handleNotificationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case a.keys.Up.Matches(msg):
		a.alertsView.MoveUp()
	case a.keys.Down.Matches(msg):
		a.alertsView.MoveDown()
	case a.keys.Select.Matches(msg):
		n := a.alertsView.Selected()
		if n == nil {
			return a, nil
		}
		id := n.Entry.ID
		if a.inventoryView.FocusEntry(id) {
			a.screen = ScreenInventory
		}
		return a, a.dismiss(id)
	default:
		switch msg.String() {
		case "x":
			if n := a.alertsView.Selected(); n != nil {
				return a, a.dismiss(n.Entry.ID)
			}
		case "X":
			if a.alertsView.Len() > 0 {
				return a, a.dismissAll()
			}
		case "r":
			return a, a.refresh()
		}
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("SheetSync shutting down...")
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	contentHeight := ContentHeight(a.height, chromeLines)
	switch {
	case a.showConfirm:
		b.WriteString(centered(a.renderConfirmDialog(), a.width, contentHeight))
	case a.screen == ScreenLogin:
		b.WriteString(centered(a.renderLogin(), a.width, contentHeight))
	case a.changelogOpen:
		b.WriteString(centered(a.renderChangelog(), a.width, contentHeight))
	case a.confirmDelete != nil:
		b.WriteString(centered(a.renderDeleteDialog(), a.width, contentHeight))
	default:
		b.WriteString(a.renderContent(contentHeight))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	title := fmt.Sprintf("SHEETSYNC v%s", Version)

	info := strings.ToUpper(string(a.config.Store.Backend))
	if a.loaded && a.screen != ScreenLogin {
		st := a.dashboardView.Stats()
		info = fmt.Sprintf("%s | ITEMS: %s | ALERTS: %d",
			info, humanize.Comma(int64(st.Units)), a.alertsView.Len())
	}

	spacing := a.width - lipgloss.Width(title) - lipgloss.Width(info) - 4
	if spacing < 1 {
		spacing = 1
	}

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

// renderAlertBar renders the date and the latest alert.
func (a *App) renderAlertBar() string {
	date := a.theme.Value.Render(a.today().Format(a.config.Display.DateFormat))
	divider := a.theme.StatusDivider.Render()

	var text string
	switch {
	case len(a.alerts) > 0:
		alert := a.alerts[0]
		switch alert.Level {
		case AlertCritical:
			text = a.theme.AlertCrit.Render(alert.Message)
		case AlertWarning:
			text = a.theme.AlertWarn.Render(alert.Message)
		default:
			text = a.theme.Alert.Render(alert.Message)
		}
	case a.loaded && a.dashboardView.Stats().Expired > 0:
		n := a.dashboardView.Stats().Expired
		text = a.theme.AlertCrit.Render(fmt.Sprintf("%d item(s) have expired", n))
	default:
		text = a.theme.Muted.Render("Everything is fresh")
	}

	return date + divider + text
}

// renderContent renders the main content area based on the current screen.
func (a *App) renderContent(height int) string {
	contentWidth := ContentWidth(a.width, 40, MaxContentWidth)
	content := a.screenContent(contentWidth, height)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	contentStyle := lipgloss.NewStyle().
		Width(contentWidth)

	return style.Render(contentStyle.Render(content))
}

func (a *App) screenContent(width, height int) string {
	switch a.screen {
	case ScreenInventory:
		if a.showForm && a.addForm != nil {
			return a.addForm.Render(width)
		}
		content := a.inventoryView.Render(width, height)
		if a.searchMode {
			content = a.theme.Label.Render("SEARCH: ") +
				a.theme.Accent.Render(a.inventoryView.Query()+"_") + "\n\n" + content
		}
		return content
	case ScreenNotifications:
		return a.alertsView.Render(width, height)
	case ScreenHelp:
		return a.renderHelp()
	default:
		return a.dashboardView.Render(width, height)
	}
}

// renderHelp renders the help screen.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		items [][2]string
	}{
		{"NAVIGATION", [][2]string{
			{"F1", "Help"},
			{"F2", "Dashboard"},
			{"F3", "Inventory"},
			{"F4", "Expiry alerts"},
			{"F10 / q", "Quit"},
		}},
		{"INVENTORY", [][2]string{
			{"Up/Down", "Select"},
			{"Enter", "Expand or collapse a product"},
			{"/", "Search by name or barcode"},
			{"a", "Add item"},
			{"d", "Delete the selected batch"},
			{"r", "Refresh"},
		}},
		{"ALERTS", [][2]string{
			{"Enter", "Show the item in the inventory"},
			{"x", "Dismiss alert"},
			{"X", "Dismiss all alerts"},
		}},
	}

	for _, sec := range sections {
		b.WriteString(a.theme.Subtitle.Render(sec.title))
		b.WriteString("\n\n")
		for _, item := range sec.items {
			line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
			b.WriteString(a.theme.Primary.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

// renderLogin renders the unlock box.
func (a *App) renderLogin() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("Welcome Back"))
	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Enter your passphrase to unlock SheetSync."))
	b.WriteString("\n\n")
	b.WriteString(a.passphrase.RenderWithLabelWidth(12))
	b.WriteString("\n")

	switch {
	case a.unlocking:
		b.WriteString("\n")
		b.WriteString(a.theme.Label.Render("Unlocking..."))
		b.WriteString("\n")
	case a.loginErr != "":
		b.WriteString("\n")
		b.WriteString(a.theme.Error.Render(a.loginErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Label.Render("Enter:Unlock  Ctrl+C:Quit"))

	return a.theme.Box.Width(dialogWidth(a.width)).Render(b.String())
}

// renderChangelog renders the what's-new dialog for the latest release.
func (a *App) renderChangelog() string {
	rel := notifications.Latest()
	width := dialogWidth(a.width)
	inner := width - 6

	var b strings.Builder
	b.WriteString(a.theme.Title.Render("What's New in SheetSync?"))
	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render(components.Wrap("We've made some exciting updates to improve your experience.", inner)))
	b.WriteString("\n\n")
	b.WriteString(a.theme.Label.Render(fmt.Sprintf("Version %s • %s", rel.Version, rel.Date)))
	b.WriteString("\n")
	b.WriteString(a.theme.Subtitle.Render(rel.Title))
	b.WriteString("\n\n")

	for _, c := range rel.Changes {
		b.WriteString(a.theme.Accent.Render("• " + c.Headline))
		b.WriteString("\n")
		b.WriteString(a.theme.Value.Render(components.Wrap(c.Detail, inner-2)))
		b.WriteString("\n\n")
	}

	b.WriteString(a.theme.StatusKey.Render("[Enter] Got it, thanks!"))

	return a.theme.Box.Width(width).Render(b.String())
}

// renderDeleteDialog renders the delete confirmation.
func (a *App) renderDeleteDialog() string {
	width := dialogWidth(a.width)
	text := fmt.Sprintf("This action cannot be undone. This will permanently delete the item %q from your inventory.",
		a.confirmDelete.Name)

	dialog := a.theme.Title.Render("Are you sure?") + "\n\n" +
		a.theme.Base.Render(components.Wrap(text, width-6)) + "\n\n" +
		a.theme.Label.Render("[Y]es, delete  [N]o")

	return a.theme.Box.Width(width).Render(dialog)
}

// renderConfirmDialog renders the quit confirmation dialog.
func (a *App) renderConfirmDialog() string {
	return a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" +
			a.theme.Base.Render("Are you sure you want to exit?") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	separator := a.theme.DrawHorizontalLine(a.width)
	return separator + "\n" + a.theme.Footer.Render(a.keys.StatusBarHelp(a.width))
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}}, a.alerts...)

	// Keep only last 10 alerts
	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
}

// Run starts the TUI application.
func Run(ctx context.Context, deps Deps) error {
	app := New(deps)
	app.ctx = ctx

	p := tea.NewProgram(app, tea.WithAltScreen())

	// Handle context cancellation
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
