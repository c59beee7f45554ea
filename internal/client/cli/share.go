package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/clouddrive/internal/client/library"
	"github.com/dmitrijs2005/clouddrive/internal/client/share"
	"github.com/dmitrijs2005/clouddrive/internal/common"
)

const shareHelp = "Share commands: tab <user|link>, user <email>, link [expiry], copy, qr, show, close"

// Share opens the share dialog for a file and runs its own prompt until the
// dialog closes, either on "close" or after a successful user share.
func (a *App) Share(ctx context.Context, ref string) error {
	f, err := a.resolveFile(ctx, ref)
	if err != nil {
		return err
	}
	d := a.library.OpenShare(f)
	printlnFn(fmt.Sprintf("Sharing %q", f.OriginalName))
	printlnFn(shareHelp)

	for d.IsOpen() {
		printlnFn(fmt.Sprintf("share:%s> ", d.Tab()))
		line, err := readLine(a.reader)
		if err != nil {
			d.Close()
			return nil
		}
		parts := splitArgs(line)
		if len(parts) == 0 {
			continue
		}
		cmd, rest := parts[0], strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			printlnFn(shareHelp)
		case "tab":
			tab, err := share.ParseTab(rest)
			if err != nil {
				report(err)
				continue
			}
			d.SwitchTab(ctx, tab)
			printShare(d)
		case "user":
			a.shareWithUser(ctx, d, rest)
		case "link":
			a.generateLink(ctx, d, rest)
		case "copy":
			if err := d.CopyLink(); err != nil {
				report(err)
				continue
			}
			printlnFn(d.Form(share.TabLink).Message)
		case "qr":
			qr, err := d.QRCode()
			if err != nil {
				report(err)
				continue
			}
			printlnFn(qr)
		case "show":
			printShare(d)
		case "close", "exit", "quit":
			d.Close()
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
	return nil
}

func (a *App) shareWithUser(ctx context.Context, d *share.Dialog, email string) {
	if d.Tab() != share.TabUser {
		d.SwitchTab(ctx, share.TabUser)
	}
	d.SetEmail(email)
	err := d.ShareWithUser(ctx)
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrBusy):
		report(err)
		return
	case err != nil:
		printlnFn(d.Form(share.TabUser).Message)
		return
	}

	printlnFn(d.Form(share.TabUser).Message)
	select {
	case <-d.Done():
	case <-ctx.Done():
		d.Close()
	}
}

func (a *App) generateLink(ctx context.Context, d *share.Dialog, expiry string) {
	exp, err := parseExpiry(expiry, time.Now())
	if err != nil {
		report(err)
		return
	}
	if d.Tab() != share.TabLink {
		d.SwitchTab(ctx, share.TabLink)
	}
	d.SetExpiry(exp)

	err = d.GenerateLink(ctx)
	if errors.Is(err, common.ErrValidation) || errors.Is(err, common.ErrBusy) {
		report(err)
		return
	}
	printlnFn(d.Form(share.TabLink).Message)
	if err == nil {
		printlnFn(d.Link(), "("+library.FormatExpiry(exp)+")")
	}
}

func printShare(d *share.Dialog) {
	printlnFn(fmt.Sprintf("File: %s  tab: %s", d.File().OriginalName, d.Tab()))
	for _, tab := range []share.Tab{share.TabUser, share.TabLink} {
		st := d.Form(tab)
		line := fmt.Sprintf("  %s: %s", tab, st.Status)
		if st.Message != "" {
			line += " - " + st.Message
		}
		printlnFn(line)
	}
	if link := d.Link(); link != "" {
		printlnFn("  link:", link)
	}
}

// parseExpiry reads an optional link expiry: empty for none, a duration
// ("36h", "7d"), a date ("2006-01-02", end of that day local time) or an
// RFC 3339 timestamp. It must lie in the future.
func parseExpiry(s string, now time.Time) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "never" {
		return nil, nil
	}

	var t time.Time
	if days, ok := strings.CutSuffix(s, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			t = now.AddDate(0, 0, n)
		}
	}
	if t.IsZero() {
		if d, err := time.ParseDuration(s); err == nil {
			t = now.Add(d)
		} else if day, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
			t = day.Add(24*time.Hour - time.Second)
		} else if ts, err := time.Parse(time.RFC3339, s); err == nil {
			t = ts
		} else {
			return nil, fmt.Errorf("%w: cannot read expiry %q (use 24h, 7d, 2006-01-02 or RFC 3339)", common.ErrValidation, s)
		}
	}
	if !t.After(now) {
		return nil, fmt.Errorf("%w: expiry %q is in the past", common.ErrValidation, s)
	}
	return &t, nil
}
