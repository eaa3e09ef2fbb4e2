package report

// reportTemplate is the self-contained HTML document: inline CSS, no
// external fetches at view time, client-side interactive sort by
// score/price/date and filter by region/minimum price. Kept as a data constant, in the same spirit
// as internal/ai's prompt templates — markup is not behavior.
const reportTemplate = `<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Тендеры — {{.FilterName}}</title>
<style>
* { margin:0; padding:0; box-sizing:border-box; }
body { font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif; background:linear-gradient(135deg,#667eea 0%,#764ba2 100%); min-height:100vh; padding:20px; }
.container { max-width:1200px; margin:0 auto; }
.header { background:#fff; border-radius:16px; padding:24px; margin-bottom:24px; box-shadow:0 10px 30px rgba(0,0,0,.2); }
.header h1 { color:#667eea; font-size:28px; margin-bottom:8px; }
.header .meta { color:#666; font-size:14px; }
.controls { background:#fff; border-radius:16px; padding:16px 24px; margin-bottom:24px; display:flex; gap:16px; flex-wrap:wrap; align-items:center; }
.controls select, .controls input { padding:8px 12px; border-radius:8px; border:1px solid #ddd; }
.grid { display:grid; grid-template-columns:repeat(auto-fill,minmax(320px,1fr)); gap:16px; }
.card { background:#fff; border-radius:16px; padding:20px; box-shadow:0 4px 14px rgba(0,0,0,.12); }
.card h3 { font-size:16px; margin-bottom:8px; }
.card h3 a { color:#333; text-decoration:none; }
.card h3 a:hover { text-decoration:underline; }
.card .row { font-size:13px; color:#555; margin-bottom:4px; }
.score { display:inline-block; padding:2px 10px; border-radius:999px; font-size:12px; font-weight:600; color:#fff; }
.score-high { background:#2e7d32; }
.score-mid { background:#ef6c00; }
.score-low { background:#9e9e9e; }
.flags { margin-top:8px; }
.flag { display:inline-block; background:#ffebee; color:#c62828; font-size:11px; padding:2px 8px; border-radius:999px; margin:2px; }
.rejected { opacity:.7; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>{{.FilterName}}</h1>
    <div class="meta">Сформировано {{.GeneratedAt.Format "02.01.2006 15:04"}} · найдено {{len .Cards}}{{if .Rejected}} · отклонено {{len .Rejected}}{{end}}</div>
  </div>
  <div class="controls">
    <label>Сортировка:
      <select id="sortSelect" onchange="applySort()">
        <option value="score">По релевантности</option>
        <option value="price">По цене</option>
        <option value="date">По дате</option>
      </select>
    </label>
    <label>Регион: <input id="regionFilter" type="text" oninput="applyFilter()" placeholder="фильтр по региону"></label>
    <label>Мин. цена: <input id="minPrice" type="number" oninput="applyFilter()"></label>
  </div>
  <div class="grid" id="cardGrid">
    {{range .Cards}}
    <div class="card" data-score="{{.Score}}" data-price="{{if .Price}}{{.Price}}{{else}}0{{end}}" data-date="{{.PublishedDate.Format "2006-01-02"}}" data-region="{{.CustomerRegion}}">
      <span class="score {{if ge .Score 80}}score-high{{else if ge .Score 60}}score-mid{{else}}score-low{{end}}">{{.Score}}</span>
      <h3><a href="{{.URL}}" target="_blank" rel="noopener">{{.Name}}</a></h3>
      <div class="row">№ {{.Number}}</div>
      <div class="row">Цена: {{if .Price}}{{formatPrice .Price}}{{else}}не указана{{end}}</div>
      <div class="row">Заказчик: {{if .CustomerName}}{{.CustomerName}}{{else}}не указан{{end}}</div>
      <div class="row">Регион: {{if .CustomerRegion}}{{.CustomerRegion}}{{else}}не указан{{end}}</div>
      <div class="row">Опубликован: {{.PublishedDate.Format "02.01.2006"}}</div>
      {{if .SubmissionDeadline}}<div class="row">Подача до: {{.SubmissionDeadline.Format "02.01.2006 15:04"}}</div>{{end}}
      <div class="row">Совпадения: {{range .MatchedKeywords}}{{.}} {{end}}</div>
      {{if .RedFlags}}<div class="flags">{{range .RedFlags}}<span class="flag">{{.}}</span>{{end}}</div>{{end}}
    </div>
    {{end}}
  </div>
  {{if .Rejected}}
  <div class="header" style="margin-top:24px;">
    <h1 style="font-size:20px;">Отклонённые тендеры (отладка)</h1>
  </div>
  <div class="grid">
    {{range .Rejected}}
    <div class="card rejected">
      <h3><a href="{{.URL}}" target="_blank" rel="noopener">{{.Name}}</a></h3>
      <div class="row">№ {{.Number}}</div>
      <div class="row">Причина отклонения: {{.Reason}}</div>
    </div>
    {{end}}
  </div>
  {{end}}
</div>
<script>
function applySort() {
  var key = document.getElementById('sortSelect').value;
  var grid = document.getElementById('cardGrid');
  var cards = Array.prototype.slice.call(grid.children);
  cards.sort(function(a, b) {
    if (key === 'price') return parseFloat(b.dataset.price) - parseFloat(a.dataset.price);
    if (key === 'date') return b.dataset.date.localeCompare(a.dataset.date);
    return parseInt(b.dataset.score) - parseInt(a.dataset.score);
  });
  cards.forEach(function(c) { grid.appendChild(c); });
}
function applyFilter() {
  var region = document.getElementById('regionFilter').value.toLowerCase();
  var minPrice = parseFloat(document.getElementById('minPrice').value) || 0;
  var grid = document.getElementById('cardGrid');
  Array.prototype.forEach.call(grid.children, function(card) {
    var matchesRegion = !region || card.dataset.region.toLowerCase().indexOf(region) !== -1;
    var matchesPrice = parseFloat(card.dataset.price) >= minPrice;
    card.style.display = (matchesRegion && matchesPrice) ? '' : 'none';
  });
}
</script>
</body>
</html>`
