// Package ui implements the interactive terminal rendering of the site.
//
// The Model is a Bubble Tea value model. Widget controllers (carousel,
// testimonials pager, article listing, accordion) are pointers shared by
// every copy of the Model; their timers run on the Bubble Tea event loop via
// timer.Dispatched, so controller state is only touched from Update.
package ui

import (
	"context"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/mahar/internal/datasource"
	"github.com/vanderheijden86/mahar/pkg/accordion"
	"github.com/vanderheijden86/mahar/pkg/articles"
	"github.com/vanderheijden86/mahar/pkg/breakpoint"
	"github.com/vanderheijden86/mahar/pkg/carousel"
	"github.com/vanderheijden86/mahar/pkg/config"
	"github.com/vanderheijden86/mahar/pkg/debug"
	"github.com/vanderheijden86/mahar/pkg/format"
	"github.com/vanderheijden86/mahar/pkg/formpost"
	"github.com/vanderheijden86/mahar/pkg/metrics"
	"github.com/vanderheijden86/mahar/pkg/model"
	"github.com/vanderheijden86/mahar/pkg/pager"
	"github.com/vanderheijden86/mahar/pkg/route"
	"github.com/vanderheijden86/mahar/pkg/timer"
	"github.com/vanderheijden86/mahar/pkg/watcher"
)

// focus represents which region has keyboard focus
type focus int

const (
	focusMain focus = iota
	focusNav
	focusChips
)

// timerFiredMsg carries a controller timer callback onto the event loop.
type timerFiredMsg struct {
	fn func()
}

// ContentChangedMsg is sent when the watched content directory changes.
type ContentChangedMsg struct{}

type contentReloadedMsg struct {
	content *model.Content
	err     error
}

type formResultMsg struct {
	err error
}

type copyResultMsg struct {
	link string
	err  error
}

// Submitter sends a contact form entry.
type Submitter interface {
	Submit(ctx context.Context, s formpost.Submission) error
}

// Options configures a Model. The zero value browses with default config
// and a real clock.
type Options struct {
	Config       config.Config
	Clock        timer.Clock
	Watcher      *watcher.Watcher
	Reload       func(ctx context.Context) (*model.Content, error)
	Submitter    Submitter
	Clipboard    func(string) error
	Source       string // Where the content came from, shown in the footer
	GlamourStyle string // Empty detects the terminal background
	Renderer     *lipgloss.Renderer
}

// bus forwards messages into the running program. Messages posted before
// Bind are dropped.
type bus struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (b *bus) bind(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	b.mu.Unlock()
}

func (b *bus) post(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send == nil {
		debug.Log("ui: dropped %T before program start", msg)
		return
	}
	send(msg)
}

func (b *bus) dispatch(fn func()) {
	b.post(timerFiredMsg{fn: fn})
}

// routeEvents collects settled locations from the navigator subscription
// until Update applies them.
type routeEvents struct {
	pending []route.Match
}

// contactDraft holds the form values bound to the huh fields.
type contactDraft struct {
	Name, Phone, Email, Message string
}

func (d *contactDraft) submission() formpost.Submission {
	return formpost.Submission{Name: d.Name, Phone: d.Phone, Email: d.Email, Message: d.Message}
}

// Model is the main Bubble Tea model for the site browser
type Model struct {
	cfg     config.Config
	content *model.Content
	source  string

	// Event loop plumbing
	clock  timer.Clock
	bus    *bus
	events *routeEvents
	navSub route.Subscription

	// Routing
	nav       *route.Navigator
	view      route.View
	detailID  string
	navCursor int
	focus     focus

	// Controllers
	bp           *breakpoint.Watcher
	gallery      *carousel.Gallery
	testimonials *pager.Group[model.Testimonial]
	listing      *articles.Listing
	chips        []string
	faq          *accordion.Accordion
	home         []model.Article

	// Per-page cursors
	chipCursor    int
	articleCursor int
	faqCursor     int
	gotoPending   bool

	// Contact form
	form       *huh.Form
	draft      *contactDraft
	submitting bool
	submitter  Submitter
	clipboard  func(string) error

	// Live reload
	watcher *watcher.Watcher
	reload  func(ctx context.Context) (*model.Content, error)

	// Rendering
	theme    Theme
	md       *MarkdownRenderer
	viewport viewport.Model
	help     help.Model
	showHelp bool
	width    int
	height   int
	ready    bool

	statusMsg     string
	statusIsError bool
}

// NewModel builds the browser over c, starting at the configured path.
func NewModel(c *model.Content, opts Options) Model {
	if c == nil {
		c = &model.Content{}
	}
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.DefaultConfig()
	}
	clock := opts.Clock
	if clock == nil {
		clock = timer.Real()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	start := route.PathHome
	if cfg.StartPath != "" {
		start = route.ParseLocation(cfg.StartPath)
	}

	m := Model{
		cfg:       cfg,
		source:    opts.Source,
		clock:     clock,
		bus:       &bus{},
		events:    &routeEvents{},
		nav:       route.NewNavigator(route.DefaultTable(), route.NewMemoryHistory(start)),
		bp:        breakpoint.NewWatcher(cfg.UI.NarrowWidth),
		submitter: opts.Submitter,
		clipboard: clip,
		watcher:   opts.Watcher,
		reload:    opts.Reload,
		theme:     DefaultTheme(r),
		md:        NewMarkdownRenderer(opts.GlamourStyle, 80),
		viewport:  viewport.New(80, 20),
		help:      help.New(),
	}
	events := m.events
	m.navSub = m.nav.Subscribe(func(mt route.Match) {
		events.pending = append(events.pending, mt)
	})
	m.setContent(c)

	current := m.nav.Current()
	m.view = current.View
	m.enter(current)
	m.refresh()
	return m
}

// Bind connects the model to the running program, typically p.Send.
func (m Model) Bind(send func(tea.Msg)) {
	m.bus.bind(send)
}

// Close stops timers and releases subscriptions.
func (m Model) Close() {
	m.gallery.Stop()
	m.testimonials.Close()
	m.navSub.Unsubscribe()
}

// Init focuses the contact form when browsing starts there and starts
// watching content.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.form != nil {
		cmds = append(cmds, m.form.Init())
	}
	if m.watcher != nil {
		cmds = append(cmds, WatchContentCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// WatchContentCmd waits for the next content change.
func WatchContentCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return ContentChangedMsg{}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	reload := m.reload
	if reload == nil {
		return nil
	}
	return func() tea.Msg {
		c, err := reload(context.Background())
		return contentReloadedMsg{content: c, err: err}
	}
}

// setContent (re)builds every controller over c.
func (m *Model) setContent(c *model.Content) {
	if m.gallery != nil {
		m.gallery.Stop()
	}
	if m.testimonials != nil {
		m.testimonials.Close()
	}
	m.content = c
	m.gallery = carousel.New(c.Gallery, timer.Dispatched(m.clock, m.bus.dispatch),
		carousel.WithInterval(m.cfg.Carousel.Interval),
		carousel.WithCooldown(m.cfg.Carousel.Cooldown),
	)
	m.testimonials = pager.New(c.Testimonials, m.cfg.UI.TestimonialsWide)
	m.listing = articles.NewListing(c.Articles)
	m.chips = articles.ChipList(c.Site.FilterTags, c.Articles)
	m.faq = accordion.New(len(c.FAQs), accordion.None)
	m.home = articles.HomeSelection(c.Articles, c.Site.HomeArticles)
	m.chipCursor, m.articleCursor, m.faqCursor = 0, 0, 0
}

func (m *Model) testimonialSizes() pager.Sizes {
	return pager.Sizes{Narrow: m.cfg.UI.TestimonialsNarrow, Wide: m.cfg.UI.TestimonialsWide}
}

// navigate moves to path and applies the route change.
func (m *Model) navigate(path string) tea.Cmd {
	if !m.nav.Navigate(path) {
		return nil
	}
	return m.settleRoute()
}

func (m *Model) back() tea.Cmd {
	if !m.nav.Back() {
		m.setStatus("אין דף קודם", false)
		return nil
	}
	return m.settleRoute()
}

// settleRoute applies the locations the navigator reported: the previous
// page is torn down, the new one set up, the body scrolls to the top and
// focus moves to the main region.
func (m *Model) settleRoute() tea.Cmd {
	events := m.events.pending
	m.events.pending = nil
	var cmds []tea.Cmd
	for _, mt := range events {
		m.leave(m.view)
		m.view = mt.View
		cmds = append(cmds, m.enter(mt))
	}
	m.focus = focusMain
	m.gotoPending = false
	m.refresh()
	m.viewport.GotoTop()
	return tea.Batch(cmds...)
}

func (m *Model) leave(v route.View) {
	switch v {
	case route.Home:
		m.gallery.Stop()
		m.testimonials.Close()
	case route.Contact:
		m.form = nil
		m.draft = nil
	}
}

func (m *Model) enter(mt route.Match) tea.Cmd {
	switch mt.View {
	case route.Home:
		m.gallery.Start()
		m.testimonials.Follow(m.bp, m.testimonialSizes())
	case route.Articles:
		m.listing.SetFilter(articles.All)
		m.chipCursor, m.articleCursor = 0, 0
	case route.ArticleDetail:
		m.detailID = mt.Param("id")
	case route.FAQ:
		m.faq = accordion.New(len(m.content.FAQs), accordion.None)
		m.faqCursor = 0
	case route.Contact:
		return m.newContactForm(nil)
	}
	return nil
}

func (m *Model) setStatus(msg string, isError bool) {
	m.statusMsg = msg
	m.statusIsError = isError
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.bp.Observe(msg.Width)
		m.resize()
		m.refresh()
		return m, nil

	case timerFiredMsg:
		msg.fn()
		if m.view == route.Home {
			m.refresh()
		}
		return m, nil

	case ContentChangedMsg:
		var cmds []tea.Cmd
		cmds = append(cmds, m.reloadCmd())
		if m.watcher != nil {
			cmds = append(cmds, WatchContentCmd(m.watcher))
		}
		return m, tea.Batch(cmds...)

	case contentReloadedMsg:
		return m.applyReload(msg)

	case formResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.setStatus("שליחת הטופס נכשלה: "+msg.err.Error(), true)
			m.refresh()
			return m, nil
		}
		m.setStatus("ההודעה נשלחה בהצלחה! נחזור אליך בהקדם", false)
		var cmd tea.Cmd
		if m.view == route.Contact {
			cmd = m.newContactForm(nil)
		}
		m.refresh()
		return m, cmd

	case copyResultMsg:
		if msg.err != nil {
			m.setStatus("העתקה נכשלה: "+msg.err.Error(), true)
		} else {
			m.setStatus("הקישור הועתק: "+msg.link, false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.view == route.Contact && m.form != nil {
		return m.updateForm(msg)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) applyReload(msg contentReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus("טעינת התוכן נכשלה: "+msg.err.Error(), true)
		debug.Warn("ui: reload: %v", msg.err)
		return m, nil
	}
	if msg.content == nil {
		return m, nil
	}
	diff := datasource.Diff(m.content, msg.content)
	metrics.ContentReloads.Inc()
	debug.Log("ui: %s", diff.Summary())

	m.leave(m.view)
	m.setContent(msg.content)
	cmd := m.enter(m.nav.Current())
	m.setStatus(diff.Summary(), false)
	m.refresh()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		return m, tea.Quit
	}

	// The form owns the keyboard while it has focus.
	if m.view == route.Contact && m.form != nil && m.focus == focusMain && !m.showHelp {
		if k == "esc" {
			m.focus = focusNav
			m.refresh()
			return m, nil
		}
		return m.updateForm(msg)
	}

	if m.showHelp {
		switch k {
		case "?", "esc":
			m.showHelp = false
			m.refresh()
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.gotoPending {
		m.gotoPending = false
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			m.gallery.GoTo(int(k[0] - '1'))
			m.refresh()
			return m, nil
		}
	}

	switch k {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		m.refresh()
		return m, nil
	case "tab":
		m.cycleFocus()
		m.refresh()
		return m, nil
	case "b", "backspace":
		cmd := m.back()
		return m, cmd
	case "1", "2", "3", "4", "5", "6":
		cmd := m.navigate(navItems[k[0]-'1'].Path)
		return m, cmd
	case "t", "p", "a":
		cmd := m.navigate(legalPaths[k])
		return m, cmd
	}

	if m.focus == focusNav {
		return m.handleNavKey(k)
	}

	var handled bool
	var cmd tea.Cmd
	switch m.view {
	case route.Home:
		handled = m.handleHomeKey(k)
	case route.Articles:
		handled, cmd = m.handleArticlesKey(k)
	case route.ArticleDetail:
		handled, cmd = m.handleDetailKey(k)
	case route.FAQ:
		handled = m.handleFAQKey(k)
	}
	if handled {
		m.refresh()
		return m, cmd
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// cycleFocus moves focus navbar -> main, adding the filter chips on the
// articles page.
func (m *Model) cycleFocus() {
	switch m.focus {
	case focusNav:
		if m.view == route.Articles {
			m.focus = focusChips
		} else {
			m.focus = focusMain
		}
	case focusChips:
		m.focus = focusMain
	default:
		m.focus = focusNav
		m.navCursor = m.activeNavIndex()
	}
}

func allNavItems() []navItem {
	return append(append([]navItem(nil), navItems...), legalItems...)
}

func (m *Model) activeNavIndex() int {
	for i, it := range allNavItems() {
		if route.IsActive(m.nav.Current().Path, it.Path) {
			return i
		}
	}
	return 0
}

func (m Model) handleNavKey(k string) (tea.Model, tea.Cmd) {
	items := allNavItems()
	switch k {
	case "left", "h":
		m.navCursor = max(0, m.navCursor-1)
	case "right", "l":
		m.navCursor = min(len(items)-1, m.navCursor+1)
	case "enter":
		cmd := m.navigate(items[m.navCursor].Path)
		return m, cmd
	case "esc":
		m.focus = focusMain
	}
	m.refresh()
	return m, nil
}

func (m *Model) newContactForm(keep *contactDraft) tea.Cmd {
	if keep == nil {
		keep = &contactDraft{}
	}
	m.draft = keep
	m.form = newContactForm(m.draft, m.formWidth())
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f, cmd := m.form.Update(msg)
	if ff, ok := f.(*huh.Form); ok {
		m.form = ff
	}
	switch m.form.State {
	case huh.StateCompleted:
		draft := m.draft
		m.submitting = true
		m.setStatus("שולח...", false)
		cmd = tea.Batch(cmd, m.submitCmd(draft.submission()), m.newContactForm(draft))
	case huh.StateAborted:
		cmd = tea.Batch(cmd, m.newContactForm(nil))
	}
	m.refresh()
	return m, cmd
}

func (m Model) submitCmd(s formpost.Submission) tea.Cmd {
	sub := m.submitter
	if sub == nil {
		endpoint := m.cfg.Contact.FormEndpoint
		if endpoint == "" {
			endpoint = m.content.Site.FormEndpoint
		}
		sub = formpost.New(endpoint, m.cfg.Contact.Timeout)
	}
	return func() tea.Msg {
		return formResultMsg{err: sub.Submit(context.Background(), s)}
	}
}

func (m *Model) resize() {
	header := lipgloss.Height(m.renderHeader())
	footer := lipgloss.Height(m.renderFooter())
	m.viewport.Width = max(1, m.width)
	m.viewport.Height = max(1, m.height-header-footer)
	m.md.SetWidth(m.contentWidth())
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth())
	}
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(20, m.width-2*SpaceSM)
}

func (m Model) formWidth() int {
	return min(72, m.contentWidth())
}

// refresh rebuilds the body for the current page.
func (m *Model) refresh() {
	defer metrics.Timer(metrics.PageRender)()
	m.viewport.SetContent(m.renderBody())
}

// View renders the frame.
func (m Model) View() string {
	if !m.ready {
		return "טוען..."
	}
	body := m.viewport.View()
	if m.showHelp {
		m.help.ShowAll = true
		m.help.Width = m.width
		body = m.theme.Card.Render(m.theme.Heading.Render("מקשים") + "\n\n" + m.help.View(keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m Model) renderHeader() string {
	t := m.theme
	name := m.content.Site.Name
	if name == "" {
		name = "מחר מלחמה"
	}
	parts := []string{t.Brand.Render(name)}
	current := m.nav.Current().Path
	for i, it := range navItems {
		parts = append(parts, m.navLabel(i, it, current))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return bar + "\n" + t.rule(max(1, m.width))
}

func (m Model) navLabel(i int, it navItem, current string) string {
	t := m.theme
	switch {
	case m.focus == focusNav && i == m.navCursor:
		return t.NavCursor.Render(it.Label)
	case route.IsActive(current, it.Path):
		return t.NavActive.Render(it.Label)
	default:
		return t.NavItem.Render(it.Label)
	}
}

func (m Model) renderFooter() string {
	t := m.theme
	site := m.content.Site
	var info []string
	if site.Contact.Phone != "" {
		info = append(info, "טלפון: "+format.Phone(site.Contact.Phone))
	}
	if site.Contact.Email != "" {
		info = append(info, site.Contact.Email)
	}
	if site.Social.Instagram != "" {
		info = append(info, "Instagram")
	}
	if site.Social.Facebook != "" {
		info = append(info, "Facebook")
	}
	current := m.nav.Current().Path
	legal := make([]string, len(legalItems))
	for i, it := range legalItems {
		legal[i] = m.navLabel(len(navItems)+i, it, current)
	}
	line := strings.Join(info, " · ")
	if line != "" {
		line += "  "
	}
	line += lipgloss.JoinHorizontal(lipgloss.Top, legal...)

	status := m.statusMsg
	style := t.Status
	if m.statusIsError {
		style = t.StatusErr
	}
	if status == "" {
		style = t.MutedText
		status = m.help.ShortHelpView(keys.ShortHelp())
		if m.source != "" {
			status = m.source + "  " + status
		}
	}
	return t.Footer.Width(max(1, m.width)).Render(line + "\n" + style.Render(status))
}

func (m Model) renderBody() string {
	switch m.view {
	case route.Home:
		return m.renderHome()
	case route.Team:
		return m.renderTeam()
	case route.Method:
		return m.renderMethod()
	case route.Articles:
		return m.renderArticles()
	case route.ArticleDetail:
		return m.renderDetail()
	case route.Contact:
		return m.renderContact()
	case route.FAQ:
		return m.renderFAQ()
	case route.Terms:
		return m.renderLegal("terms")
	case route.Privacy:
		return m.renderLegal("privacy")
	case route.Accessibility:
		return m.renderLegal("accessibility")
	default:
		return m.renderNotFound()
	}
}
