package dash

const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>Token Scanner</title>
  <style>
    :root { --bg:#0b0e14; --card:#11151f; --muted:#8b93a7; --chip:#1d2433; --up:#22c55e; --down:#ef4444; }
    body{margin:0;background:var(--bg);font:13px/1.4 ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Ubuntu;color:#e5e7eb;}
    .wrap{max-width:1400px;margin:16px auto;padding:0 16px;}
    .bar{display:flex;gap:8px;align-items:center;flex-wrap:wrap;margin-bottom:10px;}
    .tab,.chain{padding:6px 14px;border-radius:999px;background:var(--chip);color:#cbd5e1;cursor:pointer;border:0;font-size:13px;}
    .tab.on,.chain.on{background:#2563eb;color:#fff;}
    select,label{background:var(--chip);color:#cbd5e1;border:0;border-radius:8px;padding:6px 8px;font-size:12px;}
    .state{font-size:12px;padding:2px 10px;border-radius:999px;background:#14532d;color:#86efac;margin-left:auto;}
    .state.err{background:#7f1d1d;color:#fecaca;}
    .tablebox{height:72vh;overflow:auto;border-radius:12px;background:var(--card);}
    table{width:100%;border-collapse:collapse;}
    thead th{position:sticky;top:0;background:#161b27;padding:10px 12px;text-align:left;font-size:12px;color:var(--muted);white-space:nowrap;}
    thead th.sortable{cursor:pointer;}
    thead th.sorted{color:#fff;}
    tbody td{padding:9px 12px;border-top:1px solid #1b2130;white-space:nowrap;}
    .pct.up{color:var(--up);} .pct.down{color:var(--down);} .pct.flat{color:var(--muted);}
    .chip{display:inline-block;font-size:11px;padding:1px 7px;background:var(--chip);border-radius:999px;color:#9ca3af;margin-right:3px;}
    .chip.bad{background:#7f1d1d;color:#fecaca;}
    .sub{color:var(--muted);font-size:11px;}
    .errbox{padding:48px;text-align:center;color:#fca5a5;}
  </style>
</head>
<body>
<div class="wrap">
  <div class="bar">
    <button class="tab on" id="tab-trending">Trending</button>
    <button class="tab" id="tab-new">New Tokens</button>
    <span style="width:16px"></span>
    <button class="chain on" data-chain="">All</button>
    <button class="chain" data-chain="ETH">ETH</button>
    <button class="chain" data-chain="SOL">SOL</button>
    <button class="chain" data-chain="BASE">BASE</button>
    <button class="chain" data-chain="BSC">BSC</button>
    <select id="minvol">
      <option value="">Vol: Any</option>
      <option value="1000">&gt;$1K</option><option value="5000">&gt;$5K</option>
      <option value="10000">&gt;$10K</option><option value="50000">&gt;$50K</option>
      <option value="100000">&gt;$100K</option><option value="250000">&gt;$250K</option>
      <option value="500000">&gt;$500K</option><option value="1000000">&gt;$1M</option>
    </select>
    <select id="maxage">
      <option value="">Age: Any</option>
      <option value="1">1 hour</option><option value="3">3 hours</option>
      <option value="6">6 hours</option><option value="12">12 hours</option>
      <option value="24">24 hours</option><option value="72">3 days</option>
      <option value="168">7 days</option>
    </select>
    <label><input type="checkbox" id="nohp" checked/> Exclude honeypots</label>
    <span class="state" id="state">connecting</span>
  </div>
  <div class="tablebox" id="box">
    <table>
      <thead><tr id="headrow"></tr></thead>
      <tbody id="rows"></tbody>
    </table>
  </div>
  <p class="sub" id="meta"></p>
</div>
<script>
  // token/exchange/price are intentionally not sortable; sorting is
  // delegated server-side via rankBy/orderBy
  var HEADERS = [
    {label:'Token', key:null}, {label:'Exchange', key:null}, {label:'Price', key:null},
    {label:'Market Cap', key:'mcap'}, {label:'5M', key:'price5M'}, {label:'1H', key:'price1H'},
    {label:'6H', key:'price6H'}, {label:'24H', key:'price24H'}, {label:'Volume', key:'volume'},
    {label:'Age', key:'age'}, {label:'Buys/Sells', key:'txns'}, {label:'Liquidity', key:'liquidity'},
    {label:'Audit', key:null}, {label:'Social', key:null}
  ];
  var sortKey = 'volume', sortDir = 'desc', tab = 'trending', chain = '';

  function post(path, body){ return fetch(path, {method:'POST', headers:{'Content-Type':'application/json'}, body:JSON.stringify(body)}); }
  function pctClass(s){ return s.startsWith('+') ? 'up' : (s.startsWith('-') ? 'down' : 'flat'); }
  function esc(s){ var d=document.createElement('div'); d.textContent=s==null?'':s; return d.innerHTML; }

  function renderHead(){
    document.getElementById('headrow').innerHTML = HEADERS.map(function(h){
      if(!h.key) return '<th>'+h.label+'</th>';
      var on = h.key===sortKey;
      var arrow = on ? (sortDir==='desc'?' ▼':' ▲') : '';
      return '<th class="sortable'+(on?' sorted':'')+'" data-key="'+h.key+'">'+h.label+arrow+'</th>';
    }).join('');
    Array.prototype.forEach.call(document.querySelectorAll('th.sortable'), function(th){
      th.onclick = function(){
        var k = th.getAttribute('data-key');
        sortDir = (k===sortKey && sortDir==='desc') ? 'asc' : 'desc';
        sortKey = k;
        post('/api/filters', {rankBy:sortKey, orderBy:sortDir});
        renderHead();
      };
    });
  }

  function auditChips(a){
    var out = '';
    out += a.honeypot ? '<span class="chip bad">HP</span>' : '<span class="chip">no HP</span>';
    if (a.mintable) out += '<span class="chip">mint</span>';
    if (a.freezable) out += '<span class="chip">freeze</span>';
    if (a.contractVerified) out += '<span class="chip">verified</span>';
    return out;
  }
  function socialChips(s){
    var out = '';
    if (s.website) out += '<span class="chip">web</span>';
    if (s.twitter) out += '<span class="chip">tw</span>';
    if (s.telegram) out += '<span class="chip">tg</span>';
    if (s.discord) out += '<span class="chip">dc</span>';
    return out;
  }

  function rowHTML(r){
    return '<tr>'
      + '<td><strong>'+esc(r.tokenSymbol)+'</strong> <span class="sub">'+esc(r.tokenName)+'</span><br/><span class="chip">'+r.chain+'</span><span class="sub">#'+r.rank+'</span></td>'
      + '<td>'+esc(r.exchange)+'</td>'
      + '<td>'+r.price+'</td>'
      + '<td>'+r.marketCap+'</td>'
      + '<td class="pct '+pctClass(r.change5m)+'">'+r.change5m+'</td>'
      + '<td class="pct '+pctClass(r.change1h)+'">'+r.change1h+'</td>'
      + '<td class="pct '+pctClass(r.change6h)+'">'+r.change6h+'</td>'
      + '<td class="pct '+pctClass(r.change24h)+'">'+r.change24h+'</td>'
      + '<td>'+r.volume+'</td>'
      + '<td>'+r.age+'</td>'
      + '<td><span class="pct up">'+r.buys+'</span> / <span class="pct down">'+r.sells+'</span></td>'
      + '<td>'+r.liquidity+' <span class="pct '+pctClass(r.liqChange)+'">'+r.liqChange+'</span></td>'
      + '<td>'+auditChips(r.audit)+'</td>'
      + '<td>'+socialChips(r.social)+(r.dexPaid?'<span class="chip">paid</span>':'')+'</td>'
      + '</tr>';
  }

  var rowCount = 0;
  async function tick(){
    try{
      var res = await fetch('/api/scanner', {cache:'no-store'});
      if(!res.ok) throw new Error('status '+res.status);
      var data = await res.json();
      var st = document.getElementById('state');
      if (data.state === 'error' && data.rows.length === 0) {
        st.textContent = 'error'; st.className = 'state err';
        document.getElementById('rows').innerHTML =
          '<tr><td colspan="14"><div class="errbox">Connection error: '+esc(data.error)+'<br/>Refresh the page or check the backend.</div></td></tr>';
        return;
      }
      st.textContent = data.state; st.className = 'state';
      rowCount = data.rows.length;
      document.getElementById('rows').innerHTML = data.rows.map(rowHTML).join('');
      document.getElementById('meta').textContent =
        rowCount + ' of ' + data.totalRows + ' rows' + (data.hasMore ? ' — scroll for more' : '');
    }catch(e){
      var st = document.getElementById('state');
      st.textContent = 'offline'; st.className = 'state err';
    }
  }

  document.getElementById('tab-trending').onclick = function(){ setTab('trending'); };
  document.getElementById('tab-new').onclick = function(){ setTab('new'); };
  function setTab(t){
    tab = t;
    document.getElementById('tab-trending').className = 'tab'+(t==='trending'?' on':'');
    document.getElementById('tab-new').className = 'tab'+(t==='new'?' on':'');
    sortKey = t==='trending' ? 'volume' : 'age'; sortDir = 'desc';
    post('/api/tab', {tab:t}).then(tick);
    renderHead();
  }

  Array.prototype.forEach.call(document.querySelectorAll('.chain'), function(b){
    b.onclick = function(){
      chain = b.getAttribute('data-chain');
      Array.prototype.forEach.call(document.querySelectorAll('.chain'), function(x){ x.className='chain'; });
      b.className = 'chain on';
      post('/api/filters', {chain:chain}).then(tick);
    };
  });
  document.getElementById('minvol').onchange = function(e){
    post('/api/filters', {minVol24H: e.target.value ? Number(e.target.value) : 0}).then(tick);
  };
  document.getElementById('maxage').onchange = function(e){
    post('/api/filters', {maxAge: e.target.value ? Number(e.target.value) : 0}).then(tick);
  };
  document.getElementById('nohp').onchange = function(e){
    post('/api/filters', {isNotHP: e.target.checked}).then(tick);
  };

  // report the visible row span; the engine decides whether to paginate
  var ROW_PX = 40;
  document.getElementById('box').addEventListener('scroll', function(){
    var box = this;
    var first = Math.floor(box.scrollTop / ROW_PX);
    var last = Math.floor((box.scrollTop + box.clientHeight) / ROW_PX);
    if (last >= rowCount - 5) {
      post('/api/viewport', {first:first, last:last});
    }
  });

  renderHead();
  tick(); setInterval(tick, 1000);
</script>
</body>
</html>`
