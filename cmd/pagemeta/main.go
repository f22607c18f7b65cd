package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ramkansal/pagemeta/internal/client"
	"github.com/ramkansal/pagemeta/internal/config"
	"github.com/ramkansal/pagemeta/pkg/plugin"
)

var version = "1.0.0"

// flags holds all parsed CLI options. Numeric and boolean fields use
// sentinel zero values so the config file can fill anything the user did
// not set on the command line.
type flags struct {
	// Targets
	urls     []string
	listFile string

	// Request
	fetcher          string
	userAgent        string
	timeout          int
	retry            int
	maxResponseSize  int
	proxy            string
	headers          []string
	disableRedirects bool

	// Sources
	noOpenGraph bool
	noTwitter   bool
	noTouchIcon bool
	noFavicon   bool
	allImages   bool

	// Batch
	parallel int

	// Output
	output string
	format string
	silent bool
	noCol  bool

	// Config file
	configFile string

	// Meta
	showHelp    bool
	showVersion bool
}

func main() {
	f := parseFlags()

	if f.showVersion {
		fmt.Printf("pagemeta v%s\n", version)
		os.Exit(0)
	}

	urls, err := collectURLs(f)
	if err != nil {
		fatal("%v", err)
	}

	if f.showHelp || len(urls) == 0 {
		printUsage()
		if len(urls) == 0 && !f.showHelp {
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, err := buildConfig(f, urls)
	if err != nil {
		fatal("%v", err)
	}

	enableANSI()

	c := client.New(cfg)
	if err := c.Init(); err != nil {
		fatal("initialization failed: %v", err)
	}
	defer c.Close()

	sig := make(chan os.Signal, 1)
	registerSignals(sig)
	go func() {
		<-sig
		fmt.Fprintf(os.Stderr, "\n\n%s Interrupt received, stopping...\n", clr("yellow", "!"))
		c.Stop()
	}()

	run(c, cfg)
}

func run(c *client.Client, cfg *client.Config) {
	if !cfg.Silent {
		printBanner()
		fmt.Printf("\n  %s %d pages\n", clr("cyan", "Targets:"), len(cfg.URLs))
		fmt.Printf("  %s %d  %s %s  %s %s\n\n",
			clr("dim", "Threads:"), cfg.Parallelism,
			clr("dim", "Fetcher:"), string(cfg.FetcherMode),
			clr("dim", "Timeout:"), cfg.Timeout,
		)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range c.Events() {
			if cfg.Silent {
				continue
			}
			handleEvent(event, cfg)
		}
	}()

	if err := c.Run(); err != nil {
		fatal("run error: %v", err)
	}

	<-done

	if !cfg.Silent {
		time.Sleep(50 * time.Millisecond)
	}
}

func handleEvent(event plugin.Event, cfg *client.Config) {
	switch event.Type {
	case plugin.EventPageDone:
		if event.Result == nil || event.Result.Meta == nil {
			return
		}
		meta := event.Result.Meta
		dur := fmtDur(event.Result.Duration)

		fmt.Printf("  %s %s %s\n",
			clr("green", "●"),
			event.Result.URL,
			clr("dim", "("+dur+")"),
		)

		if meta.Title != "" {
			fmt.Printf("      %s %s\n", clr("dim", "├─ title:"), meta.Title)
		}
		if meta.Description != "" {
			fmt.Printf("      %s %s\n", clr("dim", "├─ description:"), meta.Description)
		}
		if meta.Locale != "" {
			fmt.Printf("      %s %s\n", clr("dim", "├─ locale:"), meta.Locale)
		}
		if len(meta.Keywords) > 0 {
			fmt.Printf("      %s %s\n", clr("dim", "├─ keywords:"), strings.Join(meta.Keywords, ", "))
		}
		for _, img := range meta.Images {
			dims := ""
			if img.Width > 0 || img.Height > 0 {
				dims = fmt.Sprintf(" %dx%d", img.Width, img.Height)
			}
			fmt.Printf("      %s %s%s\n", clr("dim", "├─ image["+img.Type+"]:"), img.Src, clr("dim", dims))
		}
		for _, vid := range meta.Videos {
			fmt.Printf("      %s %s\n", clr("dim", "├─ video:"), vid.Src)
		}

	case plugin.EventPageError:
		if event.Error != nil {
			fmt.Printf("  %s %s\n", clr("red", "✗"), event.Error)
		} else {
			fmt.Printf("  %s %s\n", clr("red", "✗"), event.Message)
		}

	case plugin.EventRunStarted:
		// already printed in run()

	case plugin.EventRunFinished:
		if event.Stats == nil {
			return
		}
		s := event.Stats
		fmt.Println()
		fmt.Printf("  %s\n", strings.Repeat("─", 50))
		fmt.Printf("  %s Run complete\n", clr("green", "✓"))
		fmt.Printf("    Pages:  %s fetched, %s errors\n",
			clr("cyan", fmt.Sprintf("%d", s.PagesFetched)),
			clr("red", fmt.Sprintf("%d", s.PagesErrored)),
		)
		fmt.Printf("    Found:  %s images, %s videos in %s (%.1f pages/sec)\n",
			clr("yellow", fmt.Sprintf("%d", s.ImagesFound)),
			clr("yellow", fmt.Sprintf("%d", s.VideosFound)),
			fmtDur(s.Elapsed),
			s.PagesPerSec,
		)
		if cfg.SaveOutput {
			fmt.Printf("    Output: %s\n", clr("green", cfg.OutputPath))
		}
		fmt.Println()
	}
}

// ---------- Flag parsing ----------

func parseFlags() *flags {
	f := &flags{}

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		next := func() string {
			if i+1 < len(args) {
				i++
				return args[i]
			}
			fatal("flag %s requires an argument", arg)
			return ""
		}
		nextInt := func() int {
			v := next()
			var n int
			fmt.Sscanf(v, "%d", &n)
			return n
		}

		switch arg {
		// Targets
		case "-u", "--url":
			f.urls = append(f.urls, next())
		case "-l", "--list":
			f.listFile = next()

		// Request
		case "-f", "--fetcher":
			f.fetcher = next()
		case "-ua", "--user-agent":
			f.userAgent = next()
		case "-t", "--timeout":
			f.timeout = nextInt()
		case "-rt", "--retry":
			f.retry = nextInt()
		case "-mrs", "--max-response-size":
			f.maxResponseSize = nextInt()
		case "-px", "--proxy":
			f.proxy = next()
		case "-H", "--header":
			f.headers = append(f.headers, next())
		case "-dr", "--disable-redirects":
			f.disableRedirects = true

		// Sources
		case "--no-open-graph":
			f.noOpenGraph = true
		case "--no-twitter":
			f.noTwitter = true
		case "--no-touch-icon":
			f.noTouchIcon = true
		case "--no-favicon":
			f.noFavicon = true
		case "-ai", "--all-images":
			f.allImages = true

		// Batch
		case "-c", "--concurrency":
			f.parallel = nextInt()

		// Output
		case "-o", "--output":
			f.output = next()
		case "--format":
			f.format = next()
		case "-si", "--silent":
			f.silent = true
		case "-nc", "--no-color":
			f.noCol = true

		// Config file
		case "--config":
			f.configFile = next()

		// Meta
		case "-h", "--help":
			f.showHelp = true
		case "-V", "--version":
			f.showVersion = true

		default:
			// Treat bare args as URLs
			if !strings.HasPrefix(arg, "-") {
				f.urls = append(f.urls, arg)
			} else {
				fmt.Fprintf(os.Stderr, "Unknown flag: %s (use --help for usage)\n", arg)
				os.Exit(1)
			}
		}
	}
	return f
}

func collectURLs(f *flags) ([]string, error) {
	urls := f.urls

	if f.listFile != "" {
		file, err := os.Open(f.listFile)
		if err != nil {
			return nil, fmt.Errorf("could not open URL list: %w", err)
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			urls = append(urls, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("could not read URL list: %w", err)
		}
	}

	// Ensure every URL has a scheme
	for i, u := range urls {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			urls[i] = "https://" + u
		}
	}
	return urls, nil
}

func buildConfig(f *flags, urls []string) (*client.Config, error) {
	cfg := client.DefaultConfig()

	if f.configFile != "" {
		fileCfg, err := config.Load(f.configFile)
		if err != nil {
			return nil, err
		}
		fileCfg.Apply(cfg)
	}

	cfg.URLs = urls

	// Flags beat the config file; only assign what the user actually set.
	if f.fetcher != "" {
		switch strings.ToLower(f.fetcher) {
		case "http":
			cfg.FetcherMode = client.FetcherHTTP
		case "browser":
			cfg.FetcherMode = client.FetcherBrowser
		default:
			return nil, fmt.Errorf("unknown fetcher %q", f.fetcher)
		}
	}
	if f.userAgent != "" {
		cfg.UserAgent = f.userAgent
	}
	if f.timeout > 0 {
		cfg.Timeout = time.Duration(f.timeout) * time.Second
	}
	if f.retry > 0 {
		cfg.Retry = f.retry
	}
	if f.maxResponseSize > 0 {
		cfg.MaxResponseSize = f.maxResponseSize
	}
	if f.proxy != "" {
		cfg.Proxy = f.proxy
	}
	if len(f.headers) > 0 {
		cfg.CustomHeaders = append(cfg.CustomHeaders, f.headers...)
	}
	if f.disableRedirects {
		cfg.DisableRedirects = true
	}
	if f.parallel > 0 {
		cfg.Parallelism = f.parallel
	}

	opts := plugin.Options{}
	if f.noOpenGraph {
		opts.OpenGraph = plugin.Bool(false)
	}
	if f.noTwitter {
		opts.TwitterCard = plugin.Bool(false)
	}
	if f.noTouchIcon {
		opts.TouchIcon = plugin.Bool(false)
	}
	if f.noFavicon {
		opts.Favicon = plugin.Bool(false)
	}
	if f.allImages {
		opts.AllImages = plugin.Bool(true)
	}
	cfg.Extract = opts.Merge(cfg.Extract)

	if f.output != "" {
		cfg.SaveOutput = true
		cfg.OutputPath = f.output
	}
	if f.format != "" {
		cfg.OutputFormat = f.format
	}
	cfg.Silent = f.silent
	cfg.NoColor = f.noCol

	return cfg, nil
}

// ---------- Help / banner ----------

func printUsage() {
	printBanner()
	fmt.Print(`
USAGE:
  pagemeta [flags] <url> [<url>...]
  pagemeta -u https://example.com
  pagemeta -l urls.txt -c 10 -o results.json

TARGETS:
  -u,    --url <string>              page URL to fetch (can be used multiple times)
  -l,    --list <string>             file with one URL per line

REQUEST:
  -f,    --fetcher <string>          fetcher mode: http, browser (default "http")
  -ua,   --user-agent <string>       custom user-agent string
  -t,    --timeout <int>             time to wait for request in seconds (default 10)
  -rt,   --retry <int>               number of times to retry a failed request (default 1)
  -mrs,  --max-response-size <int>   maximum response size to read in bytes (default 4194304)
  -px,   --proxy <string>            http/socks5 proxy to use
  -H,    --header <string>           custom header in "Key: Value" format (can be used multiple times)
  -dr,   --disable-redirects         disable following redirects

SOURCES:
         --no-open-graph             skip Open Graph tags
         --no-twitter                skip Twitter Card tags
         --no-touch-icon             skip apple-touch-icon links
         --no-favicon                skip favicon links
  -ai,   --all-images                include every <img> element in the page body

BATCH:
  -c,    --concurrency <int>         number of concurrent fetch workers (default 5)

OUTPUT:
  -o,    --output <string>           save results to file (disabled by default)
         --format <string>           output file format: json, text (default "json")
  -si,   --silent                    suppress all output except errors
  -nc,   --no-color                  disable colored output

CONFIG:
         --config <string>           path to configuration file

META:
  -h,    --help                      show this help message
  -V,    --version                   show version

`)
}

func printBanner() {
	logo := `
  ██████╗  █████╗  ██████╗ ███████╗███╗   ███╗███████╗████████╗ █████╗
  ██╔══██╗██╔══██╗██╔════╝ ██╔════╝████╗ ████║██╔════╝╚══██╔══╝██╔══██╗
  ██████╔╝███████║██║  ███╗█████╗  ██╔████╔██║█████╗     ██║   ███████║
  ██╔═══╝ ██╔══██║██║   ██║██╔══╝  ██║╚██╔╝██║██╔══╝     ██║   ██╔══██║
  ██║     ██║  ██║╚██████╔╝███████╗██║ ╚═╝ ██║███████╗   ██║   ██║  ██║
  ╚═╝     ╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝     ╚═╝╚══════╝   ╚═╝   ╚═╝  ╚═╝`
	fmt.Println(clr("cyan", logo))
	fmt.Printf("  %s  %s\n", clr("dim", "Priority-resolving page metadata extraction"), clr("dim", "v"+version))
	fmt.Printf("  %s\n", clr("dim", strings.Repeat("─", 58)))
}

// ---------- Utilities ----------

func fmtDur(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}

func clr(color, text string) string {
	codes := map[string]string{
		"red":    "\033[31m",
		"green":  "\033[32m",
		"yellow": "\033[33m",
		"cyan":   "\033[36m",
		"dim":    "\033[2m",
		"bold":   "\033[1m",
		"reset":  "\033[0m",
	}
	c, ok := codes[color]
	if !ok {
		return text
	}
	return c + text + codes["reset"]
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "\n  %s %s\n\n", clr("red", "ERROR:"), fmt.Sprintf(format, args...))
	os.Exit(1)
}
