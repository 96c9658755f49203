package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

type client struct {
	baseURL    string
	httpClient *http.Client
}

type submitResp struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	JobID    string `json:"job_id"`
	Cluster  string `json:"cluster"`
	MainFile string `json:"main_file"`
}

type statusResp struct {
	JobID           string   `json:"job_id"`
	Status          string   `json:"status"`
	Cluster         string   `json:"cluster"`
	Details         string   `json:"details"`
	StateStartTime  string   `json:"state_start_time"`
	MainPythonFile  string   `json:"main_python_file"`
	Args            []string `json:"args"`
	DriverOutputURI string   `json:"driver_output_uri"`
	Completed       bool     `json:"completed"`
	Failed          bool     `json:"failed"`
}

type ui struct {
	title func(a ...any) string
	ok    func(a ...any) string
	info  func(a ...any) string
	warn  func(a ...any) string
	err   func(a ...any) string
	dim   func(a ...any) string
}

type cliConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

func newUI() *ui {
	return &ui{
		title: color.New(color.FgHiCyan, color.Bold).SprintFunc(),
		ok:    color.New(color.FgGreen, color.Bold).SprintFunc(),
		info:  color.New(color.FgCyan).SprintFunc(),
		warn:  color.New(color.FgYellow).SprintFunc(),
		err:   color.New(color.FgRed, color.Bold).SprintFunc(),
		dim:   color.New(color.FgHiBlack).SprintFunc(),
	}
}

func newClient(baseURL string) *client {
	return &client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *client) request(method, path string, body any) (int, []byte, error) {
	var buf *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		buf = bytes.NewReader(b)
	} else {
		buf = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, c.baseURL+path, buf)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, out.Bytes(), nil
}

func newSpinner(suffix string) *spinner.Spinner {
	spin := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
	spin.Suffix = " " + suffix
	if isTTY() {
		spin.Start()
	}
	return spin
}

func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func printJSON(raw []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(pretty.String())
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sparkgw", "config.yaml")
}

func loadCLIConfig() cliConfig {
	var cfg cliConfig
	path := configPath()
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	_ = yaml.Unmarshal(data, &cfg)
	return cfg
}

func saveCLIConfig(cfg cliConfig) error {
	path := configPath()
	if path == "" {
		return errors.New("cannot resolve home directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func main() {
	baseURL := getenv("SPARKGW_BASE_URL", "http://localhost:5001")
	ui := newUI()

	root := &cobra.Command{
		Use:   "sparkgw",
		Short: "sparkgw CLI",
		Long:  "CLI for the Dataproc gateway: submit PySpark jobs, poll status, fetch results.",
	}
	root.SilenceUsage = true

	root.PersistentFlags().StringVar(&baseURL, "base-url", baseURL, "Gateway base URL")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("base-url") {
			if v := strings.TrimSpace(os.Getenv("SPARKGW_BASE_URL")); v != "" {
				baseURL = v
			} else if cfg := loadCLIConfig(); cfg.BaseURL != "" {
				baseURL = cfg.BaseURL
			}
		}
	}

	root.AddCommand(
		jobCmd(&baseURL, ui),
		resultsCmd(&baseURL, ui),
		healthCmd(&baseURL, ui),
		configCmd(ui),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.err("[ERROR]"), err)
		os.Exit(1)
	}
}

func jobCmd(baseURL *string, ui *ui) *cobra.Command {
	job := &cobra.Command{
		Use:   "job",
		Short: "Job operations",
	}

	var (
		mainFile string
		args     []string
		cluster  string
	)

	submit := &cobra.Command{
		Use:     "submit",
		Short:   "Submit a PySpark job",
		Example: "sparkgw job submit --main-file gs://bucket/scripts/etl.py --arg gs://bucket/input.csv",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			if strings.TrimSpace(mainFile) == "" {
				return errors.New("main-file is required")
			}
			body := map[string]any{
				"main_python_file": mainFile,
				"args":             args,
			}
			if cluster != "" {
				body["cluster_name"] = cluster
			}

			c := newClient(*baseURL)
			spin := newSpinner("Submitting job...")
			status, resp, err := c.request("POST", "/create/job", body)
			spin.Stop()
			if err != nil {
				return err
			}
			if status >= 300 {
				return fmt.Errorf("error (%d): %s", status, string(resp))
			}
			var out submitResp
			if err := json.Unmarshal(resp, &out); err != nil {
				fmt.Println(string(resp))
				return nil
			}
			fmt.Printf("%s Job submitted: %s %s\n", ui.ok("[OK]"), out.JobID, ui.dim("(cluster "+out.Cluster+")"))
			return nil
		},
	}
	submit.Flags().StringVar(&mainFile, "main-file", "", "gs:// URI of the main Python file")
	submit.Flags().StringArrayVar(&args, "arg", nil, "Job argument (repeatable)")
	submit.Flags().StringVar(&cluster, "cluster", "", "Target cluster (defaults to the gateway's configured cluster)")

	status := &cobra.Command{
		Use:   "status <job-id>",
		Short: "Get job status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			c := newClient(*baseURL)
			spin := newSpinner("Fetching status...")
			code, resp, err := c.request("GET", "/spark/job/status?job_id="+url.QueryEscape(cmdArgs[0]), nil)
			spin.Stop()
			if err != nil {
				return err
			}
			if code >= 300 {
				return fmt.Errorf("error (%d): %s", code, string(resp))
			}
			printJSON(resp)
			return nil
		},
	}

	var (
		pollInterval time.Duration
		timeout      time.Duration
	)
	wait := &cobra.Command{
		Use:   "wait <job-id>",
		Short: "Poll until the job reaches a terminal state",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			c := newClient(*baseURL)
			deadline := time.Now().Add(timeout)
			spin := newSpinner("Waiting for job " + cmdArgs[0] + "...")
			defer spin.Stop()

			for {
				code, resp, err := c.request("GET", "/spark/job/status?job_id="+url.QueryEscape(cmdArgs[0]), nil)
				if err != nil {
					return err
				}
				if code >= 300 {
					return fmt.Errorf("error (%d): %s", code, string(resp))
				}
				var st statusResp
				if err := json.Unmarshal(resp, &st); err != nil {
					return err
				}
				if st.Completed {
					spin.Stop()
					if st.Failed {
						fmt.Printf("%s Job %s finished with state %s\n", ui.err("[FAILED]"), st.JobID, st.Status)
						if st.Details != "" {
							fmt.Println(ui.dim(st.Details))
						}
						os.Exit(1)
					}
					fmt.Printf("%s Job %s finished with state %s\n", ui.ok("[OK]"), st.JobID, st.Status)
					if st.DriverOutputURI != "" {
						fmt.Printf("%s driver output: %s\n", ui.info("[INFO]"), st.DriverOutputURI)
					}
					return nil
				}
				spin.Suffix = fmt.Sprintf(" Job %s is %s...", st.JobID, st.Status)
				if time.Now().After(deadline) {
					return fmt.Errorf("timed out after %s, job still %s", timeout, st.Status)
				}
				time.Sleep(pollInterval)
			}
		},
		Args: cobra.ExactArgs(1),
	}
	wait.Flags().DurationVar(&pollInterval, "poll-interval", 10*time.Second, "Status poll interval")
	wait.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "Give up after this long")

	job.AddCommand(submit, status, wait)
	return job
}

func resultsCmd(baseURL *string, ui *ui) *cobra.Command {
	var (
		bucket string
		path   string
	)
	results := &cobra.Command{
		Use:   "results",
		Short: "Fetch the problem_1/problem_2 result objects",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			q := url.Values{}
			if bucket != "" {
				q.Set("bucket", bucket)
			}
			if path != "" {
				q.Set("path", path)
			}
			endpoint := "/results"
			if len(q) > 0 {
				endpoint += "?" + q.Encode()
			}

			c := newClient(*baseURL)
			spin := newSpinner("Fetching results...")
			code, resp, err := c.request("GET", endpoint, nil)
			spin.Stop()
			if err != nil {
				return err
			}
			if code >= 300 {
				return fmt.Errorf("error (%d): %s", code, string(resp))
			}
			printJSON(resp)
			return nil
		},
	}
	results.Flags().StringVar(&bucket, "bucket", "", "Bucket (defaults to the gateway's configured bucket)")
	results.Flags().StringVar(&path, "path", "", "Path prefix of the result objects")
	return results
}

func healthCmd(baseURL *string, ui *ui) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Gateway health",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			c := newClient(*baseURL)
			code, resp, err := c.request("GET", "/health", nil)
			if err != nil {
				return err
			}
			if code != http.StatusOK {
				return fmt.Errorf("unhealthy (%d): %s", code, string(resp))
			}
			fmt.Printf("%s %s\n", ui.ok("[OK]"), string(resp))
			return nil
		},
	}
}

func configCmd(ui *ui) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "CLI configuration",
	}

	var base string
	set := &cobra.Command{
		Use:   "set",
		Short: "Persist CLI defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadCLIConfig()
			if base != "" {
				cfg.BaseURL = base
			}
			if err := saveCLIConfig(cfg); err != nil {
				return err
			}
			fmt.Printf("%s Config saved to %s\n", ui.ok("[OK]"), configPath())
			return nil
		},
	}
	set.Flags().StringVar(&base, "base-url", "", "Default gateway base URL")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show CLI defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadCLIConfig()
			fmt.Printf("%s %s\n", ui.title("baseUrl:"), emptyOr(cfg.BaseURL, "<unset>"))
			return nil
		},
	}

	cfgCmd.AddCommand(set, show)
	return cfgCmd
}

func emptyOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
