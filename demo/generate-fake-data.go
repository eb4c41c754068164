package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/igusev/sitesearch/internal/corpus"
	"github.com/igusev/sitesearch/internal/search"
	"github.com/igusev/sitesearch/internal/types"
)

// section is one heading with its body text
type section struct {
	title string
	level int
	slug  string
	body  string
}

// page assembles a page whose header offsets point into its content
func page(path, title string, sections ...section) *types.Page {
	var b strings.Builder
	headers := make([]types.Header, 0, len(sections))
	for _, s := range sections {
		if s.title != "" {
			offset := b.Len()
			headers = append(headers, types.Header{Title: s.title, Level: s.level, Slug: s.slug, CharIndex: &offset})
			b.WriteString(s.title + "\n")
		}
		b.WriteString(s.body + "\n")
	}
	return &types.Page{
		Path:    path,
		Title:   title,
		Headers: headers,
		Content: strings.TrimRight(b.String(), "\n"),
	}
}

func main() {
	// Create demo directory in demo/data
	demoDir := "demo/data"
	if err := os.MkdirAll(demoDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create demo dir: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating fake pages in: %s\n", demoDir)

	pages := []*types.Page{
		page("/", "Home",
			section{body: "Welcome to the Acme platform documentation. Start with the guide or jump to the API reference."},
		),
		page("/guide/", "Guide",
			section{body: "The guide walks through installing, configuring and deploying Acme."},
		),
		page("/guide/installation", "Installation",
			section{title: "Requirements", level: 2, slug: "requirements", body: "Acme needs a 64-bit Linux or macOS host with 2 GB of memory."},
			section{title: "Linux", level: 2, slug: "linux", body: "Download the archive and unpack it into /usr/local."},
			section{title: "Packages", level: 3, slug: "packages", body: "Debian and RPM packages are published for every release."},
			section{title: "macOS", level: 2, slug: "macos", body: "Install with Homebrew: brew install acme."},
		),
		page("/guide/configuration", "Configuration",
			section{body: "Acme reads acme.yaml from the working directory."},
			section{title: "Environment variables", level: 2, slug: "environment-variables", body: "Every setting can be overridden with an ACME_ prefixed variable."},
			section{title: "Logging", level: 2, slug: "logging", body: "Set log.level to debug for verbose output. Logs go to stderr unless log.file is set."},
		),
		page("/guide/deploy", "Deploy",
			section{title: "Targets", level: 2, slug: "targets", body: "Pick a deployment target: docker, kubernetes or bare metal."},
			section{title: "Docker", level: 3, slug: "docker", body: "Build the image with make image and push it to your registry."},
			section{title: "Kubernetes", level: 3, slug: "kubernetes", body: "Apply the manifests in deploy/k8s and wait for the rollout."},
		),
		page("/api/", "API Reference",
			section{body: "The HTTP API is versioned under /v1 and speaks JSON."},
			section{title: "Authentication", level: 2, slug: "authentication", body: "Send a bearer token in the Authorization header."},
			section{title: "Rate limits", level: 2, slug: "rate-limits", body: "Clients may issue 600 requests per minute before receiving 429 responses."},
		),
		page("/api/projects", "Projects",
			section{title: "List projects", level: 2, slug: "list-projects", body: "GET /v1/projects returns projects ordered by creation time."},
			section{title: "Create a project", level: 2, slug: "create-a-project", body: "POST /v1/projects with a name and an optional description."},
		),
		page("/ru/", "Руководство",
			section{body: "Руководство описывает установку, настройку и развёртывание Acme."},
			section{title: "Установка", level: 2, slug: "установка", body: "Скачайте архив и распакуйте его в /usr/local."},
			section{title: "Настройка", level: 2, slug: "настройка", body: "Acme читает acme.yaml из рабочего каталога."},
		),
		page("/zh/", "指南",
			section{body: "本指南介绍如何安装和配置 Acme。"},
			section{title: "安装", level: 2, slug: "安装", body: "下载压缩包并解压到 /usr/local。"},
			section{title: "配置", level: 2, slug: "配置", body: "Acme 从工作目录读取 acme.yaml。"},
		),
	}

	drafts := page("/drafts/roadmap", "Roadmap",
		section{body: "Unreleased plans for the next major version."},
	)
	drafts.Frontmatter = types.Frontmatter{"search": false}
	pages = append(pages, drafts)

	// Save page dump
	dumpFile := filepath.Join(demoDir, "pages.yaml")
	if err := corpus.New(dumpFile).Write(pages); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write page dump: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Created page dump (%d pages)\n", len(pages))

	// Check that the dump indexes
	c, err := search.BuildIndex(pages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build index: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	stats, err := c.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read index stats: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Indexed %d pages (cyrillic: %d, cjk: %d)\n", stats.Pages, stats.Cyrillic, stats.CJK)

	fmt.Printf("\n✅ Demo data generated successfully!\n\n")
	fmt.Printf("To search it:\n")
	fmt.Printf("  sitesearch --pages %s docker\n\n", dumpFile)
}
