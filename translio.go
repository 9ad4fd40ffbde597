// Package translio is a translation orchestration core for CMS content.
//
// It fingerprints source content, decides whether stored translations are
// missing, fresh, or stale, groups pending fields into provider-efficient
// batches, and reconciles asynchronous batch results back into per-field
// records. A fuzzy translation-memory index suggests reuse of previously
// translated text.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/nesmachny/translio"
//	    "github.com/nesmachny/translio/memory"
//	    "github.com/nesmachny/translio/provider"
//	    "github.com/nesmachny/translio/store"
//	)
//
//	func main() {
//	    st, err := store.OpenSQLite("translations.db")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer st.Close()
//
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    engine := translio.NewEngine(st, p,
//	        translio.WithMemory(memory.NewIndex(st)),
//	        translio.WithMaxBatchSize(10),
//	    )
//
//	    fields := []translio.SourceField{
//	        {ObjectID: "101", ObjectType: translio.TypePost, FieldName: "title", Value: "Hello"},
//	    }
//	    summary, err := engine.TranslateBatch(context.Background(), "fr_FR", fields)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("saved %d fields\n", len(summary.Saved))
//	}
package translio
