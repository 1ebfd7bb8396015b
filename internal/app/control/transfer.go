package control

import (
	"context"
	"fmt"

	"github.com/foliolabs/folio/internal/app/events"
	"github.com/foliolabs/folio/internal/domain/docurl"
	"github.com/foliolabs/folio/internal/domain/entity"
	"github.com/foliolabs/folio/internal/logging"
)

// Download hands the raw document bytes to the download manager. Falls
// back to downloading the source URL when the bytes are not available
// yet.
func (c *SessionController) Download(ctx context.Context) error {
	c.mu.Lock()
	sess, doc := c.current, c.doc
	c.mu.Unlock()
	if sess == nil || doc == nil {
		return fmt.Errorf("no open document")
	}
	url, filename := sess.DownloadURL, downloadFilename(sess)

	data, err := doc.Data(ctx)
	if err != nil || !c.guard(sess.ID).Valid() {
		// The blob is unavailable; the URL is still a valid handle.
		return c.deps.Downloads.DownloadURL(ctx, url, filename)
	}
	return c.deps.Downloads.Download(ctx, data, url, filename)
}

// Save serializes the document with its modified form data and hands the
// result to the download manager. Only one save runs at a time; a second
// call while one is in flight is dropped so the scripting dispatches stay
// paired. Falls back to Download when serialization fails.
func (c *SessionController) Save(ctx context.Context) error {
	log := logging.FromContext(ctx)

	c.mu.Lock()
	if c.saveInProgress || c.current == nil || c.doc == nil {
		sessExists := c.current != nil
		c.mu.Unlock()
		if !sessExists {
			return fmt.Errorf("no open document")
		}
		return nil
	}
	c.saveInProgress = true
	sess, doc := c.current, c.doc
	c.mu.Unlock()

	defer func() {
		c.guard(sess.ID).Run(func() { c.saveInProgress = false })
	}()

	if c.deps.Scripting != nil {
		if err := c.deps.Scripting.DispatchWillSave(ctx); err != nil {
			log.Warn().Err(err).Msg("will-save dispatch failed")
		}
		defer func() {
			if err := c.deps.Scripting.DispatchDidSave(ctx); err != nil {
				log.Warn().Err(err).Msg("did-save dispatch failed")
			}
		}()
	}

	data, err := doc.Save(ctx)
	if err != nil {
		log.Error().Err(err).Msg("saving document failed, downloading original instead")
		return c.Download(ctx)
	}
	if !c.guard(sess.ID).Valid() {
		return nil
	}
	return c.deps.Downloads.Download(ctx, data, sess.DownloadURL, downloadFilename(sess))
}

// downloadFilename is the filename offered to the user: the
// content-disposition filename wins over one derived from the URL.
func downloadFilename(sess *entity.Session) string {
	fromURL := docurl.Filename(sess.DownloadURL)
	if fromURL == "" {
		fromURL = "document.pdf"
	}
	return sess.Filename(fromURL)
}

// DownloadOrSave saves when modified form data would otherwise be lost,
// and downloads the original bytes otherwise.
func (c *SessionController) DownloadOrSave(ctx context.Context) error {
	c.mu.Lock()
	doc := c.doc
	c.mu.Unlock()
	if doc != nil && doc.FormDirty() {
		return c.Save(ctx)
	}
	return c.Download(ctx)
}

// Progress records transfer progress as a percentage. Regressing
// percentages are ignored: with range requests, later chunks can report a
// smaller completed fraction than an earlier one.
func (c *SessionController) Progress(loaded, total int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil || c.current.DownloadComplete {
		return
	}
	percent := 100
	if total > 0 {
		percent = int(float64(loaded) / float64(total) * 100)
	}
	if percent <= c.progressPercent {
		return
	}
	c.progressPercent = percent
	events.Publish(c.deps.Bus, events.Progress{SessionID: c.current.ID, Percent: percent})
}

// PersistView snapshots the live view position into the view-state store.
// Call on page changes and before teardown; never fatal.
func (c *SessionController) PersistView(ctx context.Context) {
	c.mu.Lock()
	if c.current == nil || !c.isInitialViewSet {
		c.mu.Unlock()
		return
	}
	fingerprint := c.current.Fingerprint
	c.mu.Unlock()
	if fingerprint == "" {
		return
	}

	vp := c.deps.Viewer.CurrentViewport()
	state := &entity.ViewState{
		Fingerprint: fingerprint,
		Page:        vp.Page,
		Zoom:        c.deps.Viewer.CurrentScaleValue(),
		ScrollLeft:  vp.ScrollLeft,
		ScrollTop:   vp.ScrollTop,
		Rotation:    c.deps.Viewer.CurrentRotation(),
		SidebarView: c.deps.Sidebar.VisibleView(),
		ScrollMode:  c.deps.Viewer.CurrentScrollMode(),
		SpreadMode:  c.deps.Viewer.CurrentSpreadMode(),
	}
	if err := c.deps.ViewStates.Save(ctx, state); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("persisting view state failed")
	}
}
