package sources

// YouTube access is split across files by responsibility:
//   youtube_data.go     : Data API v3 client: search, per-video statistics, comment threads
//   youtube_innertube.go: watch page player response types and JSON extraction
//   youtube_captions.go : auto-generated WebVTT captions via the watch page
//   ytdlp.go            : auto-generated WebVTT captions via a yt-dlp subprocess
//   cookies.go          : Netscape cookie file loader shared by both caption fetchers
