package ui

import "html/template"

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
         background: #0f172a; color: #f9fafb; margin: 0; padding: 24px; }
  h1 { text-align: center; letter-spacing: 0.03em; }
  .banner { display: flex; justify-content: center; margin: 20px 0; }
  .banner-inner { background: linear-gradient(90deg, #0f172a, #1d4ed8, #16a34a);
                  padding: 14px 28px; border-radius: 999px; text-align: center; }
  .chip { padding: 4px 12px; border-radius: 999px; background: rgba(15,23,42,.6);
          border: 1px solid rgba(148,163,184,.7); margin: 0 6px; }
  table { border-collapse: collapse; margin: 12px auto; min-width: 420px; }
  th, td { border: 1px solid #334155; padding: 6px 14px; text-align: center; }
  th { background: #1e293b; }
  .tables { display: flex; justify-content: center; gap: 40px; flex-wrap: wrap; }
  .critical { color: #ef4444; }
  .warning { color: #f97316; }
  .normal { color: #22c55e; }
</style>
</head>
<body>
<h1>🛡️ {{.Title}}</h1>

<div class="banner"><div class="banner-inner">
  <h2>Next Boss: <strong id="banner-boss">{{.Banner.Boss}}</strong></h2>
  <span class="chip">🕒 <strong id="banner-time">{{.Banner.ClockTime}}</strong></span>
  <span class="chip {{.Banner.Severity}}" id="banner-chip">⏳ <strong id="banner-cd">{{.Banner.Countdown}}</strong></span>
</div></div>

<div class="tables">
<div>
<h3>🗡️ Field Boss Spawn Table</h3>
<table id="field-table">
<tr><th>Boss Name</th><th>Interval</th><th>Last Spawn</th><th>Next Spawn Time</th><th>Countdown</th></tr>
{{range .Field}}
<tr><td>{{.Boss}}</td><td>{{.Interval}}</td><td>{{.LastSpawn}}</td><td>{{.ClockTime}}</td>
    <td class="{{.Severity}}">{{.Countdown}}</td></tr>
{{end}}
</table>
</div>
<div>
<h3>📅 Weekly Boss Spawn Table</h3>
<table id="weekly-table">
<tr><th>Boss Name</th><th>Day</th><th>Time</th><th>Countdown</th></tr>
{{range .Weekly}}
<tr><td>{{.Boss}}</td><td>{{.Day}}</td><td>{{.ClockTime}}</td>
    <td class="{{.Severity}}">{{.Countdown}}</td></tr>
{{end}}
</table>
</div>
</div>

{{if .CanEdit}}
<div style="max-width:420px;margin:24px auto">
<h3>Edit Boss Timer</h3>
<form id="edit-form">
  <input name="boss" placeholder="Boss name" required>
  <input name="last_spawn" placeholder="YYYY-MM-DD hh:mm AM" required>
  <input name="editor" placeholder="Your name" required>
  <input name="killer" placeholder="Killer name (optional)">
  <input name="password" type="password" placeholder="Password" required>
  <button type="submit">Save</button>
  <span id="edit-result"></span>
</form>
</div>
{{end}}

<script>
function render(snap) {
  document.getElementById('banner-boss').textContent = snap.banner.boss;
  document.getElementById('banner-time').textContent = snap.banner.clock_time;
  document.getElementById('banner-cd').textContent = snap.banner.countdown;
  document.getElementById('banner-chip').className = 'chip ' + snap.banner.severity;

  var ft = '<tr><th>Boss Name</th><th>Interval</th><th>Last Spawn</th><th>Next Spawn Time</th><th>Countdown</th></tr>';
  snap.field.forEach(function(r) {
    ft += '<tr><td>' + r.boss + '</td><td>' + r.interval + '</td><td>' + r.last_spawn +
          '</td><td>' + r.clock_time + '</td><td class="' + r.severity + '">' + r.countdown + '</td></tr>';
  });
  document.getElementById('field-table').innerHTML = ft;

  var wt = '<tr><th>Boss Name</th><th>Day</th><th>Time</th><th>Countdown</th></tr>';
  snap.weekly.forEach(function(r) {
    wt += '<tr><td>' + r.boss + '</td><td>' + r.day + '</td><td>' + r.clock_time +
          '</td><td class="' + r.severity + '">' + r.countdown + '</td></tr>';
  });
  document.getElementById('weekly-table').innerHTML = wt;
}

function connect() {
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + location.pathname.replace(/\/$/, '') + '/ws');
  ws.onmessage = function(ev) { render(JSON.parse(ev.data)); };
  ws.onclose = function() { setTimeout(connect, 2000); };
}
connect();

var form = document.getElementById('edit-form');
if (form) {
  form.addEventListener('submit', function(ev) {
    ev.preventDefault();
    fetch('api/edit', { method: 'POST', body: new URLSearchParams(new FormData(form)) })
      .then(function(r) { return r.json(); })
      .then(function(body) {
        document.getElementById('edit-result').textContent =
          body.error ? '❌ ' + body.error : '✅ saved';
      });
  });
}
</script>
</body>
</html>`
