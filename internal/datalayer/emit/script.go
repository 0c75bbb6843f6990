package emit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"datalayer/internal/datalayer/metrics"
	"datalayer/internal/datalayer/models"
	"datalayer/pkg/requestcontext"
)

// ScriptID is the id attribute of the emitted script element.
const ScriptID = "customdl-init"

const (
	scriptOpen  = `<script data-no-optimize="1" id="` + ScriptID + `">`
	scriptClose = `</script>`

	bootstrap = "window.dataLayer=window.dataLayer||[];window.customDL=window.customDL||[];"

	// body pushes d to customDL and p to dataLayer, then re-pushes p once
	// the document is ready if the queue no longer holds the init event.
	body = "(function(d,p){" +
		"window.customDL.push(d);" +
		"window.dataLayer.push(p);" +
		"document.addEventListener('DOMContentLoaded',function(){try{" +
		"var ok=Array.isArray(window.dataLayer)&&window.dataLayer.some(function(e){return e&&e.event==='" + models.EventName + "';});" +
		"if(!ok){window.dataLayer.push(p);console.info('customDL: re-pushed " + models.EventName + "');}" +
		"}catch(e){}});" +
		"try{console.log('customDL v'+(d.meta&&d.meta.customDL_version?d.meta.customDL_version:'?')+' init',p);}catch(e){}" +
		"})(%s,%s);"
)

// Renderer writes the bootstrap script.
type Renderer struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewRenderer(logger *slog.Logger, m *metrics.Metrics) *Renderer {
	return &Renderer{logger: logger, metrics: m}
}

// Write renders snap and payload as a script element into w. When the
// request guard in ctx has already been acquired nothing is written and
// false is returned. Without a guard in ctx every call writes.
//
// The JSON is encoded with HTML escaping so values cannot close the script
// element.
func (r *Renderer) Write(ctx context.Context, w io.Writer, snap models.Snapshot, payload models.Payload) (bool, error) {
	if g := FromContext(ctx); g != nil && !g.Acquire() {
		r.metrics.IncrementEmission(false)
		if r.logger != nil {
			r.logger.DebugContext(ctx, "data layer already emitted",
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return false, nil
	}

	d, err := json.Marshal(snap)
	if err != nil {
		return false, fmt.Errorf("encode snapshot: %w", err)
	}
	p, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("encode payload: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(scriptOpen)
	buf.WriteString(bootstrap)
	fmt.Fprintf(&buf, body, d, p)
	buf.WriteString(scriptClose)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return false, fmt.Errorf("write script: %w", err)
	}
	r.metrics.IncrementEmission(true)
	return true, nil
}
