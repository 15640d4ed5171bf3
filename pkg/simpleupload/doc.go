// Package simpleupload is a client SDK for a signed file-upload service.
//
// An upload is a two-step exchange: the client derives a deterministic
// file key (see the filekey subpackage), builds a signed prepare URL (see
// the signing subpackage), POSTs it to the service to obtain a storage
// location, then PUTs the file bytes to that location. The SDK performs
// one attempt per step; retry policy, resumable transfer, and chunking
// are deliberately left to callers.
//
// Basic usage:
//
//	client, err := simpleupload.NewClient(
//	    "https://upload.example.com",
//	    "my-app-id",
//	    os.Getenv("UPLOAD_SECRET_KEY"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	f, _ := os.Open("report.pdf")
//	defer f.Close()
//
//	result, err := client.Upload(ctx, simpleupload.UploadRequest{
//	    FileName: "report.pdf",
//	    Body:     f,
//	})
//
// The repository also ships a reference server (api subpackage, cmd/uploadserver)
// that validates the same signatures and stores bytes into a BlobStore, so
// the full protocol can be exercised end to end without external services.
package simpleupload
