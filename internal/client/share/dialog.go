// Package share implements the two-tab share dialog: granting another
// account access by email, and getting a public link (with an optional
// expiry) that can be copied or rendered as a QR code.
package share

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/clouddrive/internal/client/api"
	"github.com/dmitrijs2005/clouddrive/internal/client/models"
	"github.com/dmitrijs2005/clouddrive/internal/common"
	"github.com/dmitrijs2005/clouddrive/internal/logging"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	MsgShared        = "File shared successfully! Email notification sent."
	MsgLinkGenerated = "Share link generated! Copy and share it."
	MsgCopied        = "Link copied to clipboard!"

	msgShareFailed = "Failed to share file"
	msgLinkFailed  = "Failed to generate link"

	DefaultCloseDelay = 2 * time.Second
	copyClearDelay    = 2 * time.Second
)

var errClosed = fmt.Errorf("%w: share dialog is closed", common.ErrValidation)

// afterFunc schedules f and returns its cancel function; replaced in tests.
var afterFunc = func(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Backend is the subset of the API the dialog talks to.
type Backend interface {
	ShareWithUser(ctx context.Context, fileID, email string) error
	LookupLink(ctx context.Context, fileID string) (models.ShareLink, error)
	CreateLink(ctx context.Context, fileID string, expiresAt *time.Time) (models.ShareLink, error)
}

type Options struct {
	// WebOrigin builds links when the backend returns only a token.
	WebOrigin string
	// CloseDelay is how long a successful user share stays on screen.
	CloseDelay time.Duration
	// OnShared runs after a successful user share.
	OnShared  func(ctx context.Context)
	Clipboard Clipboard
	Log       logging.Logger
}

type Dialog struct {
	backend Backend
	file    models.FileRecord
	opts    Options
	log     logging.Logger

	mu        sync.Mutex
	open      bool
	tab       Tab
	email     string
	expiresAt *time.Time
	forms     [2]FormState
	link      string
	lookup    Lookup
	stopClose func() bool
	stopCopy  func() bool
	onClose   []func()
	done      chan struct{}
}

// Open shows the dialog for file on the user tab.
func Open(backend Backend, file models.FileRecord, opts Options) *Dialog {
	if opts.CloseDelay <= 0 {
		opts.CloseDelay = DefaultCloseDelay
	}
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	return &Dialog{
		backend: backend,
		file:    file,
		opts:    opts,
		log:     opts.Log.With("component", "share", "file", file.ID),
		open:    true,
		tab:     TabUser,
		done:    make(chan struct{}),
	}
}

func (d *Dialog) File() models.FileRecord { return d.file }

func (d *Dialog) Tab() Tab {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tab
}

// SwitchTab changes the active tab. Entering the link tab looks up an
// existing link; form states of both tabs are left as they are.
func (d *Dialog) SwitchTab(ctx context.Context, tab Tab) {
	d.mu.Lock()
	d.tab = tab
	d.mu.Unlock()

	if tab == TabLink {
		d.lookupLink(ctx)
	}
}

func (d *Dialog) lookupLink(ctx context.Context) {
	l, err := d.backend.LookupLink(ctx, d.file.ID)

	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case err == nil:
		d.lookup = Lookup{Status: LookupFound}
		if url := d.linkURL(l); url != "" {
			d.link = url
		}
	case errors.Is(err, common.ErrNotFound):
		d.lookup = Lookup{Status: LookupNotFound, Err: err}
	default:
		d.lookup = Lookup{Status: LookupFailed, Err: err}
		d.log.Warn(ctx, "share link lookup failed", "error", err)
	}
}

// Lookup reports the outcome of the last existing-link lookup.
func (d *Dialog) Lookup() Lookup {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lookup
}

func (d *Dialog) SetEmail(email string) {
	d.mu.Lock()
	d.email = strings.TrimSpace(email)
	d.mu.Unlock()
}

func (d *Dialog) Email() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.email
}

// SetExpiry sets the expiry the next GenerateLink will ask for; nil means
// the link never expires.
func (d *Dialog) SetExpiry(t *time.Time) {
	d.mu.Lock()
	d.expiresAt = t
	d.mu.Unlock()
}

// begin marks the tab's form as submitting, or reports why it can't be.
func (d *Dialog) begin(tab Tab) error {
	if !d.open {
		return errClosed
	}
	if d.forms[tab].Status == StatusSubmitting {
		return common.ErrBusy
	}
	d.forms[tab] = FormState{Status: StatusSubmitting}
	return nil
}

// ShareWithUser shares the file with the account behind the email field.
// On success the field is cleared, OnShared runs and the dialog closes
// itself after CloseDelay.
func (d *Dialog) ShareWithUser(ctx context.Context) error {
	d.mu.Lock()
	email := d.email
	if email == "" {
		d.mu.Unlock()
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if err := d.begin(TabUser); err != nil {
		d.mu.Unlock()
		return err
	}
	d.mu.Unlock()

	err := d.backend.ShareWithUser(ctx, d.file.ID, email)

	d.mu.Lock()
	if err != nil {
		d.forms[TabUser] = FormState{Status: StatusFailed, Message: api.MessageOr(err, msgShareFailed)}
		d.mu.Unlock()
		d.log.Info(ctx, "share with user failed", "error", err)
		return err
	}
	d.forms[TabUser] = FormState{Status: StatusSucceeded, Message: MsgShared}
	d.email = ""
	if d.open {
		d.stopClose = afterFunc(d.opts.CloseDelay, d.Close)
	}
	d.mu.Unlock()

	d.log.Info(ctx, "file shared with user")
	if d.opts.OnShared != nil {
		d.opts.OnShared(ctx)
	}
	return nil
}

// GenerateLink creates a link with the current expiry. The newest result
// replaces any link shown before.
func (d *Dialog) GenerateLink(ctx context.Context) error {
	d.mu.Lock()
	if err := d.begin(TabLink); err != nil {
		d.mu.Unlock()
		return err
	}
	expiresAt := d.expiresAt
	d.mu.Unlock()

	l, err := d.backend.CreateLink(ctx, d.file.ID, expiresAt)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil && d.linkURL(l) == "" {
		err = errors.New("backend returned neither link nor token")
	}
	if err != nil {
		d.forms[TabLink] = FormState{Status: StatusFailed, Message: api.MessageOr(err, msgLinkFailed)}
		d.log.Info(ctx, "generate link failed", "error", err)
		return err
	}
	d.link = d.linkURL(l)
	d.forms[TabLink] = FormState{Status: StatusSucceeded, Message: MsgLinkGenerated}
	return nil
}

func (d *Dialog) linkURL(l models.ShareLink) string {
	if l.ShareLink != "" {
		return l.ShareLink
	}
	if l.ShareToken != "" {
		return strings.TrimRight(d.opts.WebOrigin, "/") + "/share/" + l.ShareToken
	}
	return ""
}

// Link is the current share link, or "".
func (d *Dialog) Link() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.link
}

// CopyLink puts the link on the clipboard. The confirmation clears itself
// after a short delay unless something else replaced it meanwhile.
func (d *Dialog) CopyLink() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.link == "" {
		return common.ErrNoLink
	}
	if d.opts.Clipboard == nil {
		return errors.New("no clipboard available")
	}
	if err := d.opts.Clipboard.WriteAll(d.link); err != nil {
		return fmt.Errorf("copy link: %w", err)
	}

	d.forms[TabLink].Message = MsgCopied
	if d.stopCopy != nil {
		d.stopCopy()
	}
	d.stopCopy = afterFunc(copyClearDelay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.forms[TabLink].Message == MsgCopied {
			d.forms[TabLink].Message = ""
		}
	})
	return nil
}

// QRCode renders the link as a QR code made of terminal block characters.
func (d *Dialog) QRCode() (string, error) {
	link := d.Link()
	if link == "" {
		return "", common.ErrNoLink
	}
	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("qr code: %w", err)
	}
	return q.ToSmallString(false), nil
}

// Form returns the state of a tab's form.
func (d *Dialog) Form(tab Tab) FormState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.forms[tab]
}

// OnClose registers f to run once the dialog closes.
func (d *Dialog) OnClose(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onClose = append(d.onClose, f)
}

// Close hides the dialog. Requests already in flight are not cancelled.
func (d *Dialog) Close() {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return
	}
	d.open = false
	if d.stopClose != nil {
		d.stopClose()
	}
	if d.stopCopy != nil {
		d.stopCopy()
	}
	hooks := d.onClose
	d.onClose = nil
	close(d.done)
	d.mu.Unlock()

	for _, f := range hooks {
		f()
	}
}

func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Done is closed when the dialog closes.
func (d *Dialog) Done() <-chan struct{} { return d.done }
