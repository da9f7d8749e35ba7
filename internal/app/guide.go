package app

// UserGuide is shown by the guide command and the TUI help pane.
const UserGuide = `Arithmetic Encoding

Arithmetic coding is a lossless compression method. It encodes a whole message as a
single number in the interval [0, 1), narrowing the interval for every symbol in
proportion to that symbol's probability. Frequent symbols shrink the interval less,
so they cost fewer bits.

How to use Arithma

1. Choose an input mode: Text to type a message, or File to pick an image
   (PNG, JPG, JPEG, BMP or GIF).
2. Enter your text, or select a file. Use Clear to drop the selected file.
3. Press Compress or Decompress. Progress is shown until the operation completes.
   Only one operation runs at a time.
4. Open History to review past operations. Select an entry and press Delete to
   remove it.`
