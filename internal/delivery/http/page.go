package http

// indexPage is the interactive query surface: a segment selector, an hour
// slider, and a Leaflet map highlighting the predicted segment. Tiles are
// loaded from the public Carto server; nothing is rendered server-side.
const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Traffic Speed Prediction</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body { height: 100%; margin: 0; font-family: sans-serif; }
#panel { padding: 10px; background: #f5f5f5; display: flex; gap: 12px; align-items: center; flex-wrap: wrap; }
#map { height: calc(100% - 56px); }
#result { font-weight: bold; }
#result.heavy { color: red; }
#result.moderate { color: orange; }
#result.light { color: green; }
select { max-width: 320px; }
</style>
</head>
<body>
<div id="panel">
  <label>Road: <select id="segment"></select></label>
  <label>Hour: <input id="hour" type="range" min="0" max="23" value="8"> <span id="hourLabel">08:00</span></label>
  <button id="predict">Predict</button>
  <span id="result"></span>
</div>
<div id="map"></div>
<script>
const map = L.map('map').setView([52.2297, 21.0122], 12);
L.tileLayer('https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png', {
  attribution: '&copy; OpenStreetMap &copy; CARTO', maxZoom: 19
}).addTo(map);
let highlight = null;

const hourInput = document.getElementById('hour');
hourInput.addEventListener('input', () => {
  document.getElementById('hourLabel').textContent = String(hourInput.value).padStart(2, '0') + ':00';
});

fetch('/api/v1/segments').then(r => r.json()).then(body => {
  const select = document.getElementById('segment');
  for (const opt of body.data) {
    const o = document.createElement('option');
    o.value = opt.segment_id;
    o.textContent = opt.display_name;
    select.appendChild(o);
  }
});

document.getElementById('predict').addEventListener('click', () => {
  const id = document.getElementById('segment').value;
  const result = document.getElementById('result');
  fetch('/api/v1/predict?segment_id=' + encodeURIComponent(id) + '&hour=' + hourInput.value)
    .then(r => r.json())
    .then(body => {
      if (!body.success) {
        result.className = '';
        result.textContent = body.message;
        return;
      }
      const p = body.data;
      result.className = p.level;
      result.textContent = p.road_name + ': ' + p.speed_kph.toFixed(1) + ' km/h (' + p.level + ' traffic)';
      if (highlight) map.removeLayer(highlight);
      const colors = { heavy: 'red', moderate: 'orange', light: 'green' };
      highlight = L.polyline(body.latlngs, { color: colors[p.level], weight: 7, opacity: 0.8 }).addTo(map);
      map.fitBounds(highlight.getBounds(), { maxZoom: 15 });
    });
});
</script>
</body>
</html>
`
