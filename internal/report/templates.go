package report

// htmlTemplate is the main HTML template for the report
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta name="report-id" content="{{.ID}}">
    <title>{{if .Name}}{{.Name}}{{else}}profile{{end}} - Traffic Shape Report</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        :root {
            --bg-primary: #ffffff;
            --bg-secondary: #f8fafc;
            --bg-card: #ffffff;
            --text-primary: #1e293b;
            --text-secondary: #64748b;
            --text-muted: #94a3b8;
            --border-color: #e2e8f0;
            --accent-primary: #3b82f6;
            --accent-purple: #8b5cf6;
            --shadow: 0 1px 3px rgba(0, 0, 0, 0.1);
        }

        [data-theme="dark"] {
            --bg-primary: #0f172a;
            --bg-secondary: #1e293b;
            --bg-card: #1e293b;
            --text-primary: #f1f5f9;
            --text-secondary: #94a3b8;
            --text-muted: #64748b;
            --border-color: #334155;
            --shadow: 0 1px 3px rgba(0, 0, 0, 0.3);
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background-color: var(--bg-secondary);
            color: var(--text-primary);
            line-height: 1.6;
            min-height: 100vh;
        }

        .container {
            max-width: 1400px;
            margin: 0 auto;
            padding: 2rem;
        }

        /* Header */
        .header {
            background: var(--bg-card);
            border-radius: 12px;
            padding: 2rem;
            margin-bottom: 2rem;
            box-shadow: var(--shadow);
            display: flex;
            justify-content: space-between;
            align-items: center;
            flex-wrap: wrap;
            gap: 1rem;
        }

        .header-left h1 {
            font-size: 1.75rem;
            font-weight: 700;
            margin-bottom: 0.5rem;
        }

        .header-left .description {
            color: var(--text-secondary);
            font-size: 0.95rem;
        }

        .header-left .meta {
            display: flex;
            gap: 2rem;
            margin-top: 0.75rem;
            font-size: 0.875rem;
            color: var(--text-muted);
        }

        .header-right {
            display: flex;
            align-items: center;
            gap: 1rem;
        }

        .mode {
            padding: 0.75rem 1.5rem;
            border-radius: 8px;
            font-weight: 600;
            text-transform: uppercase;
            background-color: rgba(59, 130, 246, 0.1);
            color: var(--accent-primary);
            border: 1px solid rgba(59, 130, 246, 0.2);
        }

        .mode.concurrency {
            background-color: rgba(139, 92, 246, 0.1);
            color: var(--accent-purple);
            border-color: rgba(139, 92, 246, 0.2);
        }

        .theme-toggle {
            background: var(--bg-secondary);
            border: 1px solid var(--border-color);
            border-radius: 8px;
            padding: 0.5rem;
            cursor: pointer;
            color: var(--text-secondary);
            font-size: 1.25rem;
        }

        /* Metrics Grid */
        .metrics-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 1rem;
            margin-bottom: 2rem;
        }

        .metric-card {
            background: var(--bg-card);
            border-radius: 12px;
            padding: 1.5rem;
            box-shadow: var(--shadow);
        }

        .metric-card .label {
            font-size: 0.75rem;
            text-transform: uppercase;
            letter-spacing: 0.05em;
            color: var(--text-muted);
            margin-bottom: 0.5rem;
        }

        .metric-card .value {
            font-size: 1.75rem;
            font-weight: 700;
        }

        .metric-card .unit {
            font-size: 0.875rem;
            color: var(--text-secondary);
            margin-left: 0.25rem;
        }

        /* Section */
        .section {
            background: var(--bg-card);
            border-radius: 12px;
            padding: 1.5rem;
            margin-bottom: 2rem;
            box-shadow: var(--shadow);
        }

        .section-title {
            font-size: 1.125rem;
            font-weight: 600;
            margin-bottom: 1.5rem;
        }

        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(120px, 1fr));
            gap: 1rem;
        }

        .stats-item {
            text-align: center;
            padding: 1rem;
            background: var(--bg-secondary);
            border-radius: 8px;
        }

        .stats-item .name {
            font-size: 0.75rem;
            text-transform: uppercase;
            color: var(--text-muted);
        }

        .stats-item .amount {
            font-size: 1.25rem;
            font-weight: 600;
        }

        .chart-wrapper {
            position: relative;
            height: 320px;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            font-size: 0.875rem;
        }

        th, td {
            text-align: left;
            padding: 0.5rem 0.75rem;
            border-bottom: 1px solid var(--border-color);
        }

        td.property {
            font-family: ui-monospace, SFMono-Regular, Menlo, monospace;
            word-break: break-all;
        }

        .footer {
            text-align: center;
            color: var(--text-muted);
            font-size: 0.75rem;
            padding: 1rem;
        }
    </style>
</head>
<body>
    <div class="container">
        <header class="header">
            <div class="header-left">
                <h1>{{if .Name}}{{.Name}}{{else}}profile{{end}}</h1>
                {{if .Description}}<p class="description">{{.Description}}</p>{{end}}
                <div class="meta">
                    <span>Duration {{formatDuration .Total}}</span>
                    <span>{{.TimeUnit}} per sample</span>
                </div>
            </div>
            <div class="header-right">
                <div class="mode {{.Mode}}">{{.Mode}}</div>
                <button class="theme-toggle" onclick="toggleTheme()" title="Toggle dark mode">&#9790;</button>
            </div>
        </header>

        <div class="metrics-grid">
            <div class="metric-card">
                <div class="label">Samples</div>
                <div class="value">{{formatNumber .Summary.Samples}}</div>
            </div>
            <div class="metric-card">
                <div class="label">Peak</div>
                <div class="value">{{formatValue .Summary.Max}}<span class="unit">{{unitLabel .Mode}}</span></div>
            </div>
            <div class="metric-card">
                <div class="label">Peak At</div>
                <div class="value">{{formatDuration (peakOffset .Result)}}</div>
            </div>
            <div class="metric-card">
                <div class="label">Mean</div>
                <div class="value">{{formatValue .Summary.Mean}}<span class="unit">{{unitLabel .Mode}}</span></div>
            </div>
            <div class="metric-card">
                <div class="label">Total</div>
                <div class="value">{{formatValue .Summary.Area}}</div>
            </div>
        </div>

        <section class="section">
            <h2 class="section-title">Distribution</h2>
            <div class="stats-grid">
                <div class="stats-item"><div class="name">Min</div><div class="amount">{{formatValue .Summary.Min}}</div></div>
                <div class="stats-item"><div class="name">P50</div><div class="amount">{{formatValue .Summary.P50}}</div></div>
                <div class="stats-item"><div class="name">P90</div><div class="amount">{{formatValue .Summary.P90}}</div></div>
                <div class="stats-item"><div class="name">P95</div><div class="amount">{{formatValue .Summary.P95}}</div></div>
                <div class="stats-item"><div class="name">P99</div><div class="amount">{{formatValue .Summary.P99}}</div></div>
                <div class="stats-item"><div class="name">Max</div><div class="amount">{{formatValue .Summary.Max}}</div></div>
                <div class="stats-item"><div class="name">Std Dev</div><div class="amount">{{formatValue .Summary.StdDev}}</div></div>
            </div>
        </section>

        {{if .Summary.Samples}}
        <section class="section">
            <h2 class="section-title">Timeline</h2>
            <div class="chart-wrapper">
                <canvas id="timelineChart"></canvas>
            </div>
        </section>
        {{end}}

        {{with .Schedule}}
        <section class="section">
            <h2 class="section-title">Load Generator Schedule</h2>
            <table>
                <tr><th>Duration</th><td>{{.Duration}}s</td></tr>
                <tr><th>Threads</th><td>{{formatNumber .Threads}}</td></tr>
                {{range .Properties}}
                <tr><th>{{.Name}}</th><td class="property">{{.Value}}</td></tr>
                {{end}}
            </table>
        </section>
        {{end}}

        <footer class="footer">
            <p>Generated by Surge &bull; {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}} &bull; Report {{.ID}}</p>
        </footer>
    </div>

    <script>
        function toggleTheme() {
            const html = document.documentElement;
            const newTheme = html.getAttribute('data-theme') === 'dark' ? 'light' : 'dark';
            html.setAttribute('data-theme', newTheme);
            localStorage.setItem('theme', newTheme);
            updateChartColors();
        }

        document.documentElement.setAttribute('data-theme', localStorage.getItem('theme') || 'light');

        function getChartColors() {
            const isDark = document.documentElement.getAttribute('data-theme') === 'dark';
            return {
                text: isDark ? '#f1f5f9' : '#1e293b',
                grid: isDark ? '#334155' : '#e2e8f0',
                primary: '#3b82f6',
                purple: '#8b5cf6',
            };
        }

        const timelineData = {{.TimelineJSON}};
        const stepped = {{if eq .Mode "concurrency"}}true{{else}}false{{end}};

        let timelineChart;

        function createChart() {
            const colors = getChartColors();
            const color = stepped ? colors.purple : colors.primary;
            const ctx = document.getElementById('timelineChart');
            if (!ctx) {
                return;
            }
            timelineChart = new Chart(ctx.getContext('2d'), {
                type: 'line',
                data: {
                    labels: timelineData.map(d => d.offset + 's'),
                    datasets: [{
                        label: '{{unitLabel .Mode}}',
                        data: timelineData.map(d => d.value),
                        borderColor: color,
                        backgroundColor: color + '20',
                        fill: true,
                        pointRadius: 0,
                        borderWidth: 2,
                        stepped: stepped,
                    }]
                },
                options: {
                    responsive: true,
                    maintainAspectRatio: false,
                    interaction: { mode: 'index', intersect: false },
                    plugins: { legend: { labels: { color: colors.text } } },
                    scales: {
                        x: { ticks: { color: colors.text }, grid: { color: colors.grid } },
                        y: { ticks: { color: colors.text }, grid: { color: colors.grid }, beginAtZero: true },
                    }
                }
            });
        }

        function updateChartColors() {
            const colors = getChartColors();
            if (timelineChart) {
                timelineChart.options.plugins.legend.labels.color = colors.text;
                timelineChart.options.scales.x.ticks.color = colors.text;
                timelineChart.options.scales.x.grid.color = colors.grid;
                timelineChart.options.scales.y.ticks.color = colors.text;
                timelineChart.options.scales.y.grid.color = colors.grid;
                timelineChart.update();
            }
        }

        document.addEventListener('DOMContentLoaded', function() {
            if (timelineData && timelineData.length > 0) {
                createChart();
            }
        });
    </script>
</body>
</html>`
