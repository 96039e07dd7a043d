// Package apidoc turns HTTP handler tests into API Blueprint documentation.
//
// A test binary creates one [Run] in TestMain. Each test describes where it
// sits in the documentation with a chain of [group.Node] values: a resource
// group labelled "Group <Name>" enclosing an action group labelled
// "<METHOD> <path>". After exercising a handler, the test passes the
// captured exchange to [Run.Observe]:
//
//	var docs *apidoc.Run
//
//	func TestMain(m *testing.M) {
//		cfg, err := apidoc.LoadConfigFile("apidocs.yaml")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		docs, err = apidoc.NewRun(cfg)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		os.Exit(m.Run())
//	}
//
//	func TestWidgets(t *testing.T) {
//		widgets := group.New(nil, "Group Widget")
//		list := widgets.Child("GET /widgets")
//
//		t.Run("lists widgets", func(t *testing.T) {
//			req := httptest.NewRequest(http.MethodGet, "/widgets", nil)
//			xc, res, err := apidoc.Capture(router, req)
//			require.NoError(t, err)
//			assert.Equal(t, http.StatusOK, res.StatusCode)
//
//			docs.Observe(t, apidoc.Example{Group: list}, xc)
//		})
//	}
//
// The resource name picks the output file ("UserProfile" is written to
// user_profile.md) and, through the test file's name, the controller and
// model sources whose comments are copied into the document. See package
// [comment] for the comment conventions and package [blueprint] for the
// output layout.
//
// Documentation never fails a test. Examples that cannot be placed, that
// opt out, or whose response status is not representative are skipped.
package apidoc
