package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-backend/client"
	"github.com/rpupo63/portfolio-backend/listview"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/slug"
)

var (
	apiURL        string
	sessionPath   string
	loginPassword string
	listOpts      listOptions
	blogOpts      blogOptions
)

type blogOptions struct {
	Title       string
	Slug        string
	ContentFile string
	Excerpt     string
	AuthorID    string
	Tags        []string
	Publish     bool
	Feature     bool
}

type listOptions struct {
	Search   string
	Type     string
	Status   string
	DeleteID string
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage content through the admin API",
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange the admin password for a token and save it",
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			password = os.Getenv("ADMIN_PASSWORD")
		}
		s, err := client.New(apiURL, nil).Login(cmd.Context(), password)
		if err != nil {
			return err
		}
		if err := client.SaveSession(sessionPath, s); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Login successful")
		return nil
	},
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return client.ClearSession(sessionPath)
	},
}

var adminProjectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects, optionally searching, filtering or deleting one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(ctx context.Context, c *client.Client, s client.Session) error {
			_, err := listProjects(ctx, cmd.OutOrStdout(), c, s, listOpts)
			return err
		})
	},
}

var adminBlogsCmd = &cobra.Command{
	Use:   "blogs",
	Short: "List blogs, optionally searching, filtering or deleting one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(ctx context.Context, c *client.Client, s client.Session) error {
			_, err := listBlogs(ctx, cmd.OutOrStdout(), c, s, listOpts)
			return err
		})
	},
}

var adminCreateBlogCmd = &cobra.Command{
	Use:   "create-blog",
	Short: "Create a blog from a markdown file",
	Long: `Create a blog from a markdown file ("-" reads stdin).

The API requires a slug. When --slug is omitted one is generated from the
title, e.g. "Café Déjà Vu" becomes "cafe-deja-vu".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := newBlogFromOptions(blogOpts, cmd.InOrStdin())
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, c *client.Client, s client.Session) error {
			blog, err := c.CreateBlog(ctx, s, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created blog %s (/blogs/%s)\n", blog.ID, blog.Slug)
			return nil
		})
	},
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show content counts and recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(ctx context.Context, c *client.Client, s client.Session) error {
			return showDashboard(ctx, cmd.OutOrStdout(), c, s)
		})
	},
}

func init() {
	defaultSession := "portfolio-session.json"
	if dir, err := os.UserConfigDir(); err == nil {
		defaultSession = filepath.Join(dir, "portfolio", "session.json")
	}
	defaultAPI := os.Getenv("PORTFOLIO_API_URL")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}

	adminCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "base URL of the portfolio API")
	adminCmd.PersistentFlags().StringVar(&sessionPath, "session", defaultSession, "file holding the admin token")

	adminLoginCmd.Flags().StringVar(&loginPassword, "password", "", "admin password (defaults to $ADMIN_PASSWORD)")

	for _, cmd := range []*cobra.Command{adminProjectsCmd, adminBlogsCmd} {
		cmd.Flags().StringVar(&listOpts.Search, "search", "", "case-insensitive match on title and body")
		cmd.Flags().StringVar(&listOpts.Status, "status", listview.FilterAll, "status filter")
		cmd.Flags().StringVar(&listOpts.DeleteID, "delete", "", "delete the row with this id before listing")
	}
	adminProjectsCmd.Flags().StringVar(&listOpts.Type, "type", listview.FilterAll, "PROFESSIONAL, PERSONAL or all")

	f := adminCreateBlogCmd.Flags()
	f.StringVar(&blogOpts.Title, "title", "", "blog title")
	f.StringVar(&blogOpts.Slug, "slug", "", "public slug (generated from the title when empty)")
	f.StringVar(&blogOpts.ContentFile, "content-file", "", "markdown file with the blog body, - for stdin")
	f.StringVar(&blogOpts.Excerpt, "excerpt", "", "short summary")
	f.StringVar(&blogOpts.AuthorID, "author", "", "author id")
	f.StringSliceVar(&blogOpts.Tags, "tag", nil, "tag name (repeatable)")
	f.BoolVar(&blogOpts.Publish, "publish", false, "publish immediately")
	f.BoolVar(&blogOpts.Feature, "feature", false, "mark as featured")

	adminCmd.AddCommand(adminLoginCmd, adminLogoutCmd, adminProjectsCmd, adminBlogsCmd, adminCreateBlogCmd, adminDashboardCmd)
	rootCmd.AddCommand(adminCmd)
}

// withSession runs fn with the saved token. A 401 from the API drops the
// saved token so the next command asks for a fresh login.
func withSession(ctx context.Context, fn func(context.Context, *client.Client, client.Session) error) error {
	s, err := client.LoadSession(sessionPath)
	if err != nil {
		return err
	}
	if !s.Authenticated() {
		return errors.New("not logged in: run `portfolio admin login`")
	}

	err = fn(ctx, client.New(apiURL, nil), s)
	if errors.Is(err, client.ErrUnauthorized) {
		if clearErr := client.ClearSession(sessionPath); clearErr != nil {
			return clearErr
		}
		return fmt.Errorf("session rejected, log in again: %w", err)
	}
	return err
}

func listProjects(ctx context.Context, out io.Writer, c *client.Client, s client.Session, opts listOptions) (listview.Page[listview.ProjectItem], error) {
	page := listview.Reduce(listview.Page[listview.ProjectItem]{}, listview.Load{})

	projects, err := c.AdminProjects(ctx, s)
	if err != nil {
		return listview.Reduce(page, listview.LoadFailed{Err: err}), err
	}
	page = listview.Reduce(page, listview.LoadedItems[listview.ProjectItem]{Items: listview.ProjectItems(projects)})

	if opts.DeleteID != "" {
		if err := c.DeleteProject(ctx, s, opts.DeleteID); err != nil {
			return page, err
		}
		page = listview.Reduce(page, listview.DeleteConfirmed{ID: opts.DeleteID})
		fmt.Fprintf(out, "Deleted project %s\n", opts.DeleteID)
	}

	page = listview.Reduce(page, listview.SetSearch{Text: opts.Search})
	page = listview.Reduce(page, listview.SetFilter{Key: listview.FilterType, Value: opts.Type})
	page = listview.Reduce(page, listview.SetFilter{Key: listview.FilterStatus, Value: opts.Status})

	if page.Empty() {
		fmt.Fprintln(out, "No projects found.")
		return page, nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tSTATUS\tPUBLISHED\tFEATURED")
	for _, p := range page.Filtered {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%t\n", p.ID, p.Title, p.Type, p.Status, p.Published, p.Featured)
	}
	return page, tw.Flush()
}

func listBlogs(ctx context.Context, out io.Writer, c *client.Client, s client.Session, opts listOptions) (listview.Page[listview.BlogItem], error) {
	page := listview.Reduce(listview.Page[listview.BlogItem]{}, listview.Load{})

	blogs, err := c.AdminBlogs(ctx, s)
	if err != nil {
		return listview.Reduce(page, listview.LoadFailed{Err: err}), err
	}
	page = listview.Reduce(page, listview.LoadedItems[listview.BlogItem]{Items: listview.BlogItems(blogs)})

	if opts.DeleteID != "" {
		if err := c.DeleteBlog(ctx, s, opts.DeleteID); err != nil {
			return page, err
		}
		page = listview.Reduce(page, listview.DeleteConfirmed{ID: opts.DeleteID})
		fmt.Fprintf(out, "Deleted blog %s\n", opts.DeleteID)
	}

	page = listview.Reduce(page, listview.SetSearch{Text: opts.Search})
	page = listview.Reduce(page, listview.SetFilter{Key: listview.FilterStatus, Value: opts.Status})

	if page.Empty() {
		fmt.Fprintln(out, "No blogs found.")
		return page, nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSLUG\tTITLE\tSTATUS\tFEATURED")
	for _, b := range page.Filtered {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", b.ID, b.Slug, b.Title, b.FilterValue(listview.FilterStatus), b.Featured)
	}
	return page, tw.Flush()
}

func showDashboard(ctx context.Context, out io.Writer, c *client.Client, s client.Session) error {
	d, err := c.Dashboard(ctx, s)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Projects\t%d\t(%d published)\n", d.Stats.TotalProjects, d.Stats.PublishedProjects)
	fmt.Fprintf(tw, "Blogs\t%d\t(%d published)\n", d.Stats.TotalBlogs, d.Stats.PublishedBlogs)
	fmt.Fprintf(tw, "Professional\t%d\t\n", d.Stats.ProfessionalProjects)
	fmt.Fprintf(tw, "Personal\t%d\t\n", d.Stats.PersonalProjects)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(d.RecentActivity) == 0 {
		fmt.Fprintln(out, "\nNo recent activity.")
		return nil
	}
	fmt.Fprintln(out, "\nRecent activity:")
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, a := range d.RecentActivity {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.CreatedAt.Format("2006-01-02 15:04"), a.EntityType, a.Action, a.Title)
	}
	return tw.Flush()
}

// newBlogFromOptions builds the create request, reading the body from
// opts.ContentFile and filling in a slug derived from the title if needed.
func newBlogFromOptions(opts blogOptions, stdin io.Reader) (models.NewBlog, error) {
	var (
		content []byte
		err     error
	)
	switch opts.ContentFile {
	case "":
		return models.NewBlog{}, errors.New("--content-file is required")
	case "-":
		content, err = io.ReadAll(stdin)
	default:
		content, err = os.ReadFile(opts.ContentFile)
	}
	if err != nil {
		return models.NewBlog{}, fmt.Errorf("read content: %w", err)
	}

	s := opts.Slug
	if s == "" {
		if s = slug.Generate(opts.Title); s == "" {
			return models.NewBlog{}, errors.New("cannot derive a slug from the title, pass --slug")
		}
	}

	in := models.NewBlog{
		Title:     opts.Title,
		Slug:      s,
		Content:   string(content),
		Featured:  opts.Feature,
		Published: opts.Publish,
		AuthorID:  opts.AuthorID,
		Tags:      opts.Tags,
	}
	if opts.Excerpt != "" {
		in.Excerpt = &opts.Excerpt
	}
	return in, nil
}
