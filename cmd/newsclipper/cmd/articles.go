package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"NewsClipper/internal/config"
	"NewsClipper/internal/domain"
	"NewsClipper/internal/infrastructure/storage"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Manage the local store of hand-curated articles",
}

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		articles, err := store.LoadAll(cmd.Context())
		if err != nil {
			return err
		}
		if len(articles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no saved articles")
			return nil
		}
		for _, article := range articles {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t(%s) %s\n\t%s\n\tsaved %s\n",
				article.Index, article.Source, article.Title, article.Link, article.SavedAt)
		}
		return nil
	},
}

var (
	saveTitle  string
	saveLink   string
	saveDate   string
	saveSource string
	saveBody   string
)

var articlesSaveCmd = &cobra.Command{
	Use:   "save <index>",
	Short: "Save or update an article under a list index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be an integer: %w", err)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Save(cmd.Context(), domain.SavedArticle{
			Index:   index,
			Title:   saveTitle,
			Link:    saveLink,
			PubDate: saveDate,
			Source:  saveSource,
			Body:    saveBody,
		})
	},
}

var articlesDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a saved article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be an integer: %w", err)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Delete(cmd.Context(), index)
	},
}

func openStore() (*storage.SQLiteStore, error) {
	cfg := config.Load()
	return storage.NewSQLiteStore(cfg.Store.Path)
}

func init() {
	articlesSaveCmd.Flags().StringVar(&saveTitle, "title", "", "article title")
	articlesSaveCmd.Flags().StringVar(&saveLink, "link", "", "article link")
	articlesSaveCmd.Flags().StringVar(&saveDate, "date", "", "publication date")
	articlesSaveCmd.Flags().StringVar(&saveSource, "source", "", "publisher name")
	articlesSaveCmd.Flags().StringVar(&saveBody, "body", "", "hand-entered body text")
	_ = articlesSaveCmd.MarkFlagRequired("title")
	_ = articlesSaveCmd.MarkFlagRequired("link")

	articlesCmd.AddCommand(articlesListCmd, articlesSaveCmd, articlesDeleteCmd)
	rootCmd.AddCommand(articlesCmd)
}
