package gateway

import "net/http"

// handleAdminConsole serves a self-contained console to inspect opportunity
// items and human decisions without a frontend build step. The page polls the
// JSON endpoints directly.
func (g *Service) handleAdminConsole(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(adminConsoleHTML))
}

const adminConsoleHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>NOFA Skill Admin Console</title>
  <style>
    body { font-family: ui-sans-serif, system-ui; background:#0b0b0c; color:#f2efe8; margin:0; }
    .wrap { max-width: 1100px; margin: 0 auto; padding: 20px; }
    .grid { display:grid; grid-template-columns: 1fr 1fr; gap:12px; }
    .card { background:#121216; border:1px solid rgba(255,255,255,.08); border-radius:12px; padding:14px; }
    h1,h2 { margin:0 0 10px; }
    h1 { font-size:22px; }
    h2 { font-size:16px; color:#f5d28f; }
    .row { display:flex; justify-content:space-between; gap:8px; margin:8px 0; color:#c5c0b1; }
    .pill { border:1px solid rgba(255,255,255,.12); border-radius:999px; padding:2px 8px; font-size:12px; }
    .yes { color:#55d88a; } .no { color:#ff7a7a; } .pending { color:#f5d28f; }
    .muted { color:#a49d8d; font-size:13px; }
    code { color:#f5d28f; }
    pre { white-space:pre-wrap; background:#0d0d10; border:1px solid rgba(255,255,255,.06); border-radius:8px; padding:8px; overflow:auto; }
    @media (max-width: 900px) { .grid { grid-template-columns: 1fr; } }
  </style>
</head>
<body>
  <div class="wrap">
    <h1>NOFA Skill Admin Console</h1>
    <p class="muted">Tracks NOFA Trading Opportunity items and human yes/no decisions submitted from OpenClaw via REST API.</p>
    <div class="grid">
      <div class="card">
        <h2>Pending / Recent Opportunities</h2>
        <div id="opps" class="muted">Loading...</div>
      </div>
      <div class="card">
        <h2>Human Decisions (Yes / No)</h2>
        <div id="decisions" class="muted">Loading...</div>
      </div>
    </div>
    <div class="card" style="margin-top:12px;">
      <h2>REST API Quick Start</h2>
      <pre>POST /nofa/openclaw/skill/opportunities
{
  "pair": "BTCUSDT",
  "action": "BUY",
  "qty": 0.1,
  "lev": "8x",
  "rationale": "MACD reversal with bullish funding rate"
}

GET  /nofa/openclaw/skill/opportunities/next
POST /nofa/openclaw/skill/opportunities/{id}/decision {"user_id":"alice","decision":"yes"}</pre>
    </div>
  </div>
  <script>
    async function load() {
      const [oppsRes, decRes] = await Promise.all([
        fetch('/nofa/openclaw/skill/opportunities'),
        fetch('/nofa/openclaw/skill/decisions')
      ]);
      const opps = await oppsRes.json();
      const decs = await decRes.json();

      const oppWrap = document.getElementById('opps');
      const decWrap = document.getElementById('decisions');

      const oppItems = (opps.data || []).slice(0, 20);
      if (!oppItems.length) {
        oppWrap.innerHTML = '<div class="muted">No opportunities yet</div>';
      } else {
        oppWrap.innerHTML = oppItems.map(o => ` + "`" + `
          <div style="padding:10px 0;border-bottom:1px solid rgba(255,255,255,.05);">
            <div style="display:flex;justify-content:space-between;gap:8px;align-items:center;">
              <strong>${o.title}</strong>
              <span class="pill ${o.status === 'approved' ? 'yes' : (o.status === 'rejected' ? 'no' : 'pending')}">${o.status}</span>
            </div>
            <div class="row"><span>Pair</span><code>${o.pair}</code></div>
            <div class="row"><span>Action</span><span class="${o.action === 'BUY' ? 'yes' : ''}">${o.action}</span></div>
            <div class="row"><span>Qty</span><span>${o.qty}</span></div>
            <div class="row"><span>Lev</span><span>${o.lev}</span></div>
            ${o.decision ? ` + "`" + `<div class="row"><span>Human</span><span>${o.decision.user_id} - ${o.decision.decision.toUpperCase()}</span></div>` + "`" + ` : ''}
          </div>
        ` + "`" + `).join('');
      }

      const decItems = (decs.data || []).slice(0, 30);
      if (!decItems.length) {
        decWrap.innerHTML = '<div class="muted">No decisions yet</div>';
      } else {
        decWrap.innerHTML = decItems.map(d => ` + "`" + `
          <div style="padding:10px 0;border-bottom:1px solid rgba(255,255,255,.05);">
            <div style="display:flex;justify-content:space-between;gap:8px;">
              <strong>${d.user_id}</strong>
              <span class="${d.decision === 'yes' ? 'yes' : 'no'}">${d.decision.toUpperCase()}</span>
            </div>
            <div class="row"><span>Opportunity</span><code>${d.opportunity_id}</code></div>
            <div class="row"><span>Channel</span><span>${d.channel}</span></div>
            <div class="row"><span>Time</span><span>${d.decided_at}</span></div>
          </div>
        ` + "`" + `).join('');
      }
    }
    load();
    setInterval(load, 5000);
  </script>
</body>
</html>
`
